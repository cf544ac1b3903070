package models

// ChordRequest is the body of POST /api/generate
type ChordRequest struct {
	Root       string   `json:"root" binding:"required"`
	Quality    string   `json:"quality" binding:"required"`
	Extensions []string `json:"extensions"`
}

// ChordResponse carries the display symbol and the spelled pitches, root first
type ChordResponse struct {
	ChordSymbol string   `json:"chordSymbol"`
	Pitches     []string `json:"pitches"`
}

// MIDIRequest is the body of POST /api/generate/midi.
// Zero values fall back to the configured defaults.
type MIDIRequest struct {
	ChordRequest
	Octave   *int    `json:"octave,omitempty"`
	Tempo    float64 `json:"tempo,omitempty"`    // beats per minute
	Duration float64 `json:"duration,omitempty"` // in beats
	Velocity uint8   `json:"velocity,omitempty"`
}

// NoteEvent represents a single musical note with timing and pitch information
type NoteEvent struct {
	MidiNoteNumber int     `json:"midiNoteNumber"`
	Velocity       int     `json:"velocity"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
}

// QualitiesResponse lists every name the chord tables recognise
type QualitiesResponse struct {
	Qualities  []string `json:"qualities"`
	Extensions []string `json:"extensions"`
}
