package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dt-hbtn/chordgen-api/internal/models"
	"github.com/dt-hbtn/chordgen-api/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Flag values outlive a single Execute
	spellASCII = false
	midiOpts.output = ""
	midiOpts.octave = defaultMIDIOctave
	midiOpts.tempo = 120
	midiOpts.duration = 4
	midiOpts.velocity = 100
	addUserDatabaseURL = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSpellCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "unicode",
			args:     []string{"spell", "Bb", "min7", "9"},
			expected: "B" + theory.Flat + "min7(9)\nB" + theory.Flat + " D" + theory.Flat + " F A" + theory.Flat + " C\n",
		},
		{
			name:     "ascii",
			args:     []string{"spell", "--ascii", "D#", "+"},
			expected: "D#+\nD# Fx Ax\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestSpellCommand_RejectsUnknownQuality(t *testing.T) {
	_, err := run(t, "", "spell", "C", "sus2")
	assert.ErrorIs(t, err, theory.ErrUnknownQuality)
}

func TestSymbolCommand_IsPermissive(t *testing.T) {
	out, err := run(t, "", "symbol", "c#", "SUS2", "add9")
	require.NoError(t, err)
	assert.Equal(t, "C"+theory.Sharp+"sus2(add9)\n", out)
}

func TestQualitiesCommand(t *testing.T) {
	out, err := run(t, "", "qualities")
	require.NoError(t, err)
	assert.Contains(t, out, "min7b5")
	assert.Contains(t, out, "extensions: #11 #9 11 13 9 b13 b9")
}

func TestMIDICommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dm9.mid")

	out, err := run(t, "", "midi", "D", "min7", "9", "-o", path, "--octave", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)

	var keys []uint8
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			keys = append(keys, key)
		}
	}
	// D3 F3 A3 C4 E4
	assert.Equal(t, []uint8{50, 53, 57, 60, 64}, keys)
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "livecode\n", "hash-password")
	require.NoError(t, err)

	user := models.User{Password: strings.TrimSpace(out)}
	assert.True(t, user.CheckPassword("livecode"))

	_, err = run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestAddUserCommand_NeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "", "add-user", "dt-hbtn", "livecode")
	assert.ErrorContains(t, err, "no database")
}
