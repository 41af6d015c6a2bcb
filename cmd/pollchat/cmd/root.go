package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pollchat",
	Short: "pollchat CLI tool",
	Long: `pollchat is a command-line companion for the pollchat relay.

Available commands:
  version  Print the CLI version
  code     Generate room codes the way the server does
  check    Ask a running server whether a room exists

Use "pollchat [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
