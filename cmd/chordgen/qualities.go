package main

import (
	"fmt"
	"strings"

	"github.com/dt-hbtn/chordgen-api/internal/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(qualitiesCmd)
}

var qualitiesCmd = &cobra.Command{
	Use:   "qualities",
	Short: "Lists the known qualities and extensions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "qualities:  %s\n", strings.Join(theory.Qualities(), " "))
		fmt.Fprintf(out, "extensions: %s\n", strings.Join(theory.Extensions(), " "))
	},
}
