package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tymonx/cocotb/internal/plugin"
	"github.com/tymonx/cocotb/internal/plugin/dryrun"
	"github.com/tymonx/cocotb/internal/regression"
)

// initPlugins registers all built-in regression manager plugins.
// Called early in main() before any resolution happens.
func initPlugins() {
	dryrun.Register()
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered regression manager plugins",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "default (built-in)")
		for _, e := range plugin.Lookup(regression.PluginGroup) {
			fmt.Fprintf(w, "%s -> %s\n", e.Name, e.Module)
		}
	},
}
