package main

import (
	"fmt"

	"github.com/dt-hbtn/chordgen-api/internal/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(symbolCmd)
}

var symbolCmd = &cobra.Command{
	Use:   "symbol ROOT QUALITY [EXTENSION...]",
	Short: "Formats a chord symbol without checking the names",
	Long: `Formats a chord symbol. Unlike spell, the quality and extensions are
not looked up, so any text is accepted.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), theory.Symbol(args[0], args[1], args[2:]))
	},
}
