package theory

import (
	"slices"
	"strings"
)

// Chord tones above the root, root excluded
var qualities = map[string][]Interval{
	"maj":     {{2, 4}, {4, 7}},
	"min":     {{2, 3}, {4, 7}},
	"dim":     {{2, 3}, {4, 6}},
	"+":       {{2, 4}, {4, 8}},
	"maj6":    {{2, 4}, {4, 7}, {5, 9}},
	"min6":    {{2, 3}, {4, 7}, {5, 9}},
	"7":       {{2, 4}, {4, 7}, {6, 10}},
	"maj7":    {{2, 4}, {4, 7}, {6, 11}},
	"min7":    {{2, 3}, {4, 7}, {6, 10}},
	"minmaj7": {{2, 3}, {4, 7}, {6, 11}},
	"min7b5":  {{2, 3}, {4, 6}, {6, 10}},
	"dim7":    {{2, 3}, {4, 6}, {6, 9}},
	"+7":      {{2, 4}, {4, 8}, {6, 10}},
	"+maj7":   {{2, 4}, {4, 8}, {6, 11}},
	"maj6/9":  {{2, 4}, {4, 7}, {5, 9}, {8, 14}},
	"min6/9":  {{2, 3}, {4, 7}, {5, 9}, {8, 14}},
}

var extensions = map[string]Interval{
	"9":   {8, 14},
	"b9":  {8, 13},
	"#9":  {8, 15},
	"11":  {10, 17},
	"#11": {10, 18},
	"13":  {12, 21},
	"b13": {12, 20},
}

// LookupQuality returns a copy of the intervals for a quality name.
// Matching is case-insensitive.
func LookupQuality(name string) ([]Interval, bool) {
	ivs, ok := qualities[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return slices.Clone(ivs), true
}

// LookupExtension returns the interval for an extension name such as "#11".
func LookupExtension(name string) (Interval, bool) {
	iv, ok := extensions[strings.ToLower(name)]
	return iv, ok
}

// Qualities lists the known quality names, sorted.
func Qualities() []string {
	return sortedKeys(qualities)
}

// Extensions lists the known extension names, sorted.
func Extensions() []string {
	return sortedKeys(extensions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
