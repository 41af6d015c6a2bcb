package cmd

import (
	"fmt"

	"github.com/nfrund/pollchat/internal/rooms"
	"github.com/spf13/cobra"
)

var (
	codeCount  int
	codeLength int
)

// codeCmd represents the code command
var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Generates random room codes",
	Long: `Prints room codes drawn from the same alphabet and generator the server
uses when a client creates a room without naming one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if codeCount < 1 {
			return fmt.Errorf("count must be at least 1, got %d", codeCount)
		}
		gen, err := rooms.NewCodeGenerator(codeLength)
		if err != nil {
			return err
		}
		for range codeCount {
			fmt.Fprintln(cmd.OutOrStdout(), gen())
		}
		return nil
	},
}

func init() {
	codeCmd.Flags().IntVarP(&codeCount, "count", "n", 1, "number of codes to print")
	codeCmd.Flags().IntVar(&codeLength, "length", rooms.DefaultCodeLength, "code length")
	rootCmd.AddCommand(codeCmd)
}
