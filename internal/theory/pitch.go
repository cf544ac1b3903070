package theory

import (
	"fmt"
	"strings"
)

const letters = "ABCDEFG"

// Natural pitch class of A..G (C = 0)
var naturalPitchClasses = [7]int{9, 11, 0, 2, 4, 5, 7}

// Semitones from each natural letter to the next one up
var letterSteps = [7]int{2, 1, 2, 2, 1, 2, 2}

// Interval is a generic size (diatonic steps) paired with a specific size
// (semitones). Together they decide how a transposed pitch is spelled.
type Interval struct {
	Steps     int
	Semitones int
}

// Pitch is a diatonic letter plus a chromatic offset from its natural.
// The zero value is not a valid pitch; use NewPitch or ParsePitch.
type Pitch struct {
	letter byte
	offset int
}

// NewPitch builds a pitch from a single letter A-G (any case) and an offset.
func NewPitch(letter string, offset int) (Pitch, error) {
	if len(letter) != 1 {
		return Pitch{}, fmt.Errorf("%w: letter must be a single character, got %q", ErrInvalidRoot, letter)
	}
	l := strings.ToUpper(letter)[0]
	if l < 'A' || l > 'G' {
		return Pitch{}, fmt.Errorf("%w: %q is not a letter from A to G", ErrInvalidRoot, letter)
	}
	return Pitch{letter: l, offset: offset}, nil
}

// ParsePitch reads a pitch name such as "C", "f#", "Bbb" or "Gx".
func ParsePitch(text string) (Pitch, error) {
	if text == "" {
		return Pitch{}, ErrEmptyPitch
	}

	l := strings.ToUpper(text[:1])[0]
	if l < 'A' || l > 'G' {
		return Pitch{}, fmt.Errorf("%w: %q does not start with a letter from A to G", ErrInvalidRoot, text)
	}

	offset, err := ParseAccidental(text[1:])
	if err != nil {
		return Pitch{}, err
	}
	return Pitch{letter: l, offset: offset}, nil
}

// Letter returns the upper-case diatonic letter.
func (p Pitch) Letter() string {
	return string(p.letter)
}

// Offset returns the chromatic offset from the natural letter.
func (p Pitch) Offset() int {
	return p.offset
}

func (p Pitch) index() int {
	return int(p.letter - 'A')
}

// Transpose moves the pitch up by iv and spells the result on the letter
// iv.Steps positions above.
//
// Neither running total is reduced modulo 12: the octaves picked up while
// walking the letters cancel in the final subtraction.
func (p Pitch) Transpose(iv Interval) Pitch {
	pos := p.index()
	natural := naturalPitchClasses[pos]
	target := natural + p.offset + iv.Semitones

	for i := 0; i < iv.Steps; i++ {
		natural += letterSteps[pos%7]
		pos++
	}

	return Pitch{
		letter: letterForPitchClass(natural % 12),
		offset: target - natural,
	}
}

func letterForPitchClass(pc int) byte {
	for i, natural := range naturalPitchClasses {
		if natural == pc {
			return letters[i]
		}
	}
	// unreachable: natural sums only ever land on natural pitch classes
	panic(fmt.Sprintf("theory: %d is not a natural pitch class", pc))
}

// MIDIKey returns the MIDI note number of the pitch in the given octave,
// with C4 = 60. Offsets may carry the key across an octave boundary.
func (p Pitch) MIDIKey(octave int) int {
	return (octave+1)*12 + naturalPitchClasses[p.index()] + p.offset
}

// String renders the pitch with Unicode accidentals, e.g. "E♭".
func (p Pitch) String() string {
	return string(p.letter) + FormatAccidental(p.offset)
}

// ASCII renders the pitch in the form ParsePitch reads back, e.g. "Eb".
func (p Pitch) ASCII() string {
	return string(p.letter) + ASCIIAccidental(p.offset)
}
