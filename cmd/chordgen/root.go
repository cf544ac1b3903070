package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordgen",
	Short: "Spell chords offline",
	Long: `chordgen spells chords from a root, a quality and optional extensions,
prints chord symbols and exports chords as Standard MIDI Files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// DATABASE_URL and MIDI defaults may live in .env
		_ = godotenv.Load()
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
