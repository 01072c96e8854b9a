package main

import (
	"github.com/cottand/typelint/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "typelint [subcommand]",
	Short:        "typelint checks JavaScript code against the types its documentation comments declare",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ReplCmd)
}
