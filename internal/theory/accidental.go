package theory

import (
	"fmt"
	"strings"
)

// Display glyphs for accidentals
const (
	Flat        = "\u266D"
	Sharp       = "\u266F"
	DoubleFlat  = "\U0001D12B"
	DoubleSharp = "\U0001D12A"
)

// ASCII input alphabet
const (
	asciiDoubleSharp = 'x'
	asciiSharp       = '#'
	asciiFlat        = 'b'
)

// displayReplacer tries "bb" before "b" at every position.
var displayReplacer = strings.NewReplacer(
	"x", DoubleSharp,
	"#", Sharp,
	"bb", DoubleFlat,
	"b", Flat,
)

// ParseAccidental converts ASCII accidental text to a chromatic offset.
// Character order is not significant, so "#b" is accepted and yields 0.
func ParseAccidental(text string) (int, error) {
	offset := 0
	for _, r := range text {
		switch r {
		case asciiDoubleSharp:
			offset += 2
		case asciiSharp:
			offset++
		case asciiFlat:
			offset--
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidAccidental, text)
		}
	}
	return offset, nil
}

// FormatAccidental renders an offset with Unicode accidental glyphs.
func FormatAccidental(offset int) string {
	return renderAccidental(offset, DoubleSharp, Sharp, DoubleFlat, Flat)
}

// ASCIIAccidental renders an offset in the alphabet ParseAccidental accepts.
func ASCIIAccidental(offset int) string {
	return renderAccidental(offset, "x", "#", "bb", "b")
}

func renderAccidental(offset int, doubleSharp, sharp, doubleFlat, flat string) string {
	switch {
	case offset > 0:
		return strings.Repeat(doubleSharp, offset/2) + strings.Repeat(sharp, offset%2)
	case offset < 0:
		return strings.Repeat(doubleFlat, -offset/2) + strings.Repeat(flat, -offset%2)
	default:
		return ""
	}
}

// Transliterate rewrites ASCII accidentals in text to display glyphs.
func Transliterate(text string) string {
	return displayReplacer.Replace(text)
}
