package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/switchyard/machine"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [input-file]",
	Short: "Parse machines and print them in canonical form",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	machines, err := machine.ParseAll(in)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	for _, m := range machines {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return nil
}
