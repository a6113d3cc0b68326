package main

import "os"

func main() {
	initPlugins()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
