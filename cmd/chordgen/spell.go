package main

import (
	"fmt"
	"strings"

	"github.com/dt-hbtn/chordgen-api/internal/services"
	"github.com/spf13/cobra"
)

var spellASCII bool

func init() {
	spellCmd.Flags().BoolVar(&spellASCII, "ascii", false, "print accidentals as x, #, bb and b")
	rootCmd.AddCommand(spellCmd)
}

var spellCmd = &cobra.Command{
	Use:     "spell ROOT QUALITY [EXTENSION...]",
	Short:   "Prints the symbol and the spelled pitches of a chord",
	Example: "  chordgen spell Bb min7 9 11",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := services.NewChordService(nil, nil)
		chord, err := svc.Build(cmd.Context(), args[0], args[1], args[2:])
		if err != nil {
			return err
		}

		names := chord.Names()
		symbol := chord.Symbol
		if spellASCII {
			for i, p := range chord.Pitches {
				names[i] = p.ASCII()
			}
			symbol = asciiSymbol(chord, args[2:])
		}

		fmt.Fprintln(cmd.OutOrStdout(), symbol)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
		return nil
	},
}

// asciiSymbol is the chord symbol with the root's accidentals left in ASCII
func asciiSymbol(chord *services.Chord, extensions []string) string {
	s := chord.Root.ASCII() + chord.Quality
	if len(extensions) > 0 {
		s += "(" + strings.Join(extensions, ",") + ")"
	}
	return s
}
