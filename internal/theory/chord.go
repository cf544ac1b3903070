package theory

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Intervals resolves a quality and its extensions to the intervals of every
// chord member, starting with the unison for the root.
func Intervals(quality string, exts []string) ([]Interval, error) {
	tones, ok := LookupQuality(quality)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuality, quality)
	}

	ivs := make([]Interval, 0, 1+len(tones)+len(exts))
	ivs = append(ivs, Interval{})
	ivs = append(ivs, tones...)
	for _, name := range exts {
		iv, ok := LookupExtension(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
		}
		ivs = append(ivs, iv)
	}
	return ivs, nil
}

// Spell returns the root, the chord tones of quality in table order, then
// one pitch per extension in the order given. Nothing is sorted or
// deduplicated.
func Spell(root, quality string, exts []string) ([]Pitch, error) {
	r, err := ParsePitch(root)
	if err != nil {
		return nil, err
	}

	ivs, err := Intervals(quality, exts)
	if err != nil {
		return nil, err
	}

	pitches := make([]Pitch, len(ivs))
	for i, iv := range ivs {
		pitches[i] = r.Transpose(iv)
	}
	return pitches, nil
}

// Generate is Spell rendered as display pitch names, root first.
func Generate(root, quality string, exts []string) ([]string, error) {
	pitches, err := Spell(root, quality, exts)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	return names, nil
}

// Symbol renders a chord symbol such as "B♭min7" or "C7(9,♯11)".
// Names are not checked against the quality or extension tables.
func Symbol(root, quality string, exts []string) string {
	symbol := Transliterate(capitalize(root)) + strings.ToLower(quality)
	if len(exts) > 0 {
		symbol += "(" + Transliterate(strings.Join(exts, ",")) + ")"
	}
	return symbol
}

// capitalize upper-cases the first character and leaves the rest alone.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
