package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		root       string
		quality    string
		extensions []string
		expected   []string
	}{
		{
			name:     "C major",
			root:     "C",
			quality:  "maj",
			expected: []string{"C", "E", "G"},
		},
		{
			name:     "C minor 7th",
			root:     "C",
			quality:  "min7",
			expected: []string{"C", "E" + Flat, "G", "B" + Flat},
		},
		{
			name:     "C diminished",
			root:     "C",
			quality:  "dim",
			expected: []string{"C", "E" + Flat, "G" + Flat},
		},
		{
			name:     "G major 7th",
			root:     "G",
			quality:  "maj7",
			expected: []string{"G", "B", "D", "F" + Sharp},
		},
		{
			name:     "quality is case-insensitive",
			root:     "g",
			quality:  "MAJ7",
			expected: []string{"G", "B", "D", "F" + Sharp},
		},
		{
			name:     "E flat minor",
			root:     "Eb",
			quality:  "min",
			expected: []string{"E" + Flat, "G" + Flat, "B" + Flat},
		},
		{
			name:     "A flat major",
			root:     "Ab",
			quality:  "maj",
			expected: []string{"A" + Flat, "C", "E" + Flat},
		},
		{
			name:     "G sharp diminished 7th",
			root:     "G#",
			quality:  "dim7",
			expected: []string{"G" + Sharp, "B", "D", "F"},
		},
		{
			name:     "C flat major 7th",
			root:     "Cb",
			quality:  "maj7",
			expected: []string{"C" + Flat, "E" + Flat, "G" + Flat, "B" + Flat},
		},
		{
			name:     "D sharp augmented",
			root:     "D#",
			quality:  "+",
			expected: []string{"D" + Sharp, "F" + DoubleSharp, "A" + DoubleSharp},
		},
		{
			name:     "F minor 6/9",
			root:     "F",
			quality:  "min6/9",
			expected: []string{"F", "A" + Flat, "C", "D", "G"},
		},
		{
			name:       "C dominant 7th with extensions",
			root:       "C",
			quality:    "7",
			extensions: []string{"9", "#11"},
			expected:   []string{"C", "E", "G", "B" + Flat, "D", "F" + Sharp},
		},
		{
			name:       "extensions keep input order",
			root:       "A",
			quality:    "min7",
			extensions: []string{"b13", "11", "b9"},
			expected:   []string{"A", "C", "E", "G", "F", "D", "B" + Flat},
		},
		{
			name:       "duplicates pass through",
			root:       "C",
			quality:    "maj6/9",
			extensions: []string{"9"},
			expected:   []string{"C", "E", "G", "A", "D", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pitches, err := Generate(tt.root, tt.quality, tt.extensions)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pitches)
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		root       string
		quality    string
		extensions []string
		expected   error
	}{
		{"empty root", "", "maj", nil, ErrEmptyPitch},
		{"invalid root", "H", "maj", nil, ErrInvalidRoot},
		{"invalid accidental", "C?", "maj", nil, ErrInvalidAccidental},
		{"unknown quality", "C", "bogus", nil, ErrUnknownQuality},
		{"unknown extension", "C", "7", []string{"9", "10"}, ErrUnknownExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pitches, err := Generate(tt.root, tt.quality, tt.extensions)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsInputError(err))
			assert.Nil(t, pitches)
		})
	}
}

func TestGenerate_EveryQuality(t *testing.T) {
	for _, name := range Qualities() {
		t.Run(name, func(t *testing.T) {
			ivs, ok := LookupQuality(name)
			require.True(t, ok)
			require.NotEmpty(t, ivs)

			pitches, err := Generate("C", name, []string{})
			require.NoError(t, err)
			assert.Len(t, pitches, 1+len(ivs))
		})
	}
}

func TestSpell(t *testing.T) {
	pitches, err := Spell("Bb", "7", []string{"b9"})
	require.NoError(t, err)
	require.Len(t, pitches, 5)

	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.ASCII()
	}
	assert.Equal(t, []string{"Bb", "D", "F", "Ab", "Cb"}, names)
}

func TestIntervals(t *testing.T) {
	ivs, err := Intervals("Min7", []string{"9"})
	require.NoError(t, err)
	assert.Equal(t, []Interval{{0, 0}, {2, 3}, {4, 7}, {6, 10}, {8, 14}}, ivs)

	_, err = Intervals("sus4", nil)
	assert.ErrorIs(t, err, ErrUnknownQuality)

	_, err = Intervals("maj", []string{"#13"})
	assert.ErrorIs(t, err, ErrUnknownExtension)
}

func TestLookupQuality_ReturnsCopy(t *testing.T) {
	ivs, ok := LookupQuality("maj")
	require.True(t, ok)
	ivs[0] = Interval{Steps: 99, Semitones: 99}

	again, _ := LookupQuality("maj")
	assert.Equal(t, Interval{Steps: 2, Semitones: 4}, again[0])
}

func TestLookupExtension(t *testing.T) {
	iv, ok := LookupExtension("#11")
	require.True(t, ok)
	assert.Equal(t, Interval{Steps: 10, Semitones: 18}, iv)

	iv, ok = LookupExtension("B9")
	require.True(t, ok)
	assert.Equal(t, Interval{Steps: 8, Semitones: 13}, iv)

	_, ok = LookupExtension("15")
	assert.False(t, ok)
}

func TestQualitiesAndExtensionsAreSorted(t *testing.T) {
	q := Qualities()
	assert.Len(t, q, 16)
	assert.IsNonDecreasing(t, q)

	e := Extensions()
	assert.Equal(t, []string{"#11", "#9", "11", "13", "9", "b13", "b9"}, e)
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		name       string
		root       string
		quality    string
		extensions []string
		expected   string
	}{
		{"plain", "c", "maj7", nil, "Cmaj7"},
		{"quality lower-cased", "bb", "MIN7", nil, "B" + Flat + "min7"},
		{"double flat root", "ebb", "maj", nil, "E" + DoubleFlat + "maj"},
		{"extensions", "c", "7", []string{"9", "#11"}, "C7(9," + Sharp + "11)"},
		{"double sharp root", "fx", "maj", []string{"b9"}, "F" + DoubleSharp + "maj(" + Flat + "9)"},
		{"empty extension list", "G", "min", []string{}, "Gmin"},
		{"empty root", "", "maj", nil, "maj"},
		{"unvalidated names", "H", "bogus", []string{"foo"}, "Hbogus(foo)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Symbol(tt.root, tt.quality, tt.extensions))
		})
	}
}
