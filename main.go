package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Om-2611/tasks-generator/cmd"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "tasks-generator",
		Short:   "Turn feature descriptions into structured engineering plans",
		Version: version,
	}
	rootCmd.AddCommand(cmd.ServeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
