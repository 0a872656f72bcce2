package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute is the entry point for the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gestit",
		Short:         "Compile and run gesture-recognition networks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDemoCmd(),
		newServeCmd(),
	)
	return root
}
