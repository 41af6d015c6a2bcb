package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version can be set at build time.
// Example: go build -ldflags "-X 'github.com/nfrund/pollchat/cmd/pollchat/cmd.Version=v1.0.0'"
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the CLI version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pollchat %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
