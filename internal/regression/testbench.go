package regression

import "sync"

// testbench holds tests contributed by linked-in testbench packages.
// Packages register their tests during init(); the CLI copies them into
// whichever manager resolution produced.
var (
	benchMu    sync.Mutex
	benchTests []Test
)

// RegisterTest adds a test to the process-wide testbench table.
// Panics on a test without a name; everything else is validated by the
// manager at Register time.
func RegisterTest(t Test) {
	if t.Name == "" {
		panic("testbench test registered without a name")
	}
	benchMu.Lock()
	defer benchMu.Unlock()
	benchTests = append(benchTests, t)
}

// RegisteredTests returns a copy of the testbench table in registration order.
func RegisteredTests() []Test {
	benchMu.Lock()
	defer benchMu.Unlock()
	out := make([]Test, len(benchTests))
	copy(out, benchTests)
	return out
}

// ResetTests clears the testbench table. Only for testing.
func ResetTests() {
	benchMu.Lock()
	defer benchMu.Unlock()
	benchTests = nil
}
