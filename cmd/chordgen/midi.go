package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dt-hbtn/chordgen-api/internal/services"
	"github.com/spf13/cobra"
)

const defaultMIDIOctave = 4

var midiOpts struct {
	output   string
	octave   int
	tempo    float64
	duration float64
	velocity uint8
}

func init() {
	f := midiCmd.Flags()
	f.StringVarP(&midiOpts.output, "output", "o", "", "file to write (default ROOT-QUALITY.mid)")
	f.IntVar(&midiOpts.octave, "octave", envInt("MIDI_DEFAULT_OCTAVE", defaultMIDIOctave), "octave of the root, C4 = 60")
	f.Float64Var(&midiOpts.tempo, "tempo", envFloat("MIDI_DEFAULT_TEMPO", 120), "beats per minute")
	f.Float64Var(&midiOpts.duration, "duration", 4, "length of the chord in beats")
	f.Uint8Var(&midiOpts.velocity, "velocity", 100, "note-on velocity, 1-127")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:     "midi ROOT QUALITY [EXTENSION...]",
	Short:   "Writes a chord as a Standard MIDI File",
	Example: "  chordgen midi D min7 9 -o dm9.mid --octave 3",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := services.NewChordService(nil, nil)
		chord, err := svc.Build(cmd.Context(), args[0], args[1], args[2:])
		if err != nil {
			return err
		}

		data, err := svc.RenderMIDI(cmd.Context(), chord, services.MIDIOptions{
			Octave:        midiOpts.octave,
			Tempo:         midiOpts.tempo,
			DurationBeats: midiOpts.duration,
			Velocity:      midiOpts.velocity,
		})
		if err != nil {
			return err
		}

		path := midiOpts.output
		if path == "" {
			path = chord.Root.ASCII() + "-" + chord.Quality + ".mid"
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", path, chord.Symbol, len(data))
		return nil
	},
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}
