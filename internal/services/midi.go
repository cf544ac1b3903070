package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dt-hbtn/chordgen-api/internal/models"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	midiChannel          = 0
	midiMaxKey           = 127
	defaultVelocity      = 100
	defaultDurationBeats = 4.0 // one bar of 4/4
	maxDurationBeats     = 64.0
	minDurationBeats     = 1.0 / 64
)

var (
	ErrNoteOutOfRange = errors.New("note outside MIDI range 0-127")
	ErrInvalidMIDI    = errors.New("invalid MIDI options")
)

// MIDIOptions controls how a chord is rendered to a Standard MIDI File
type MIDIOptions struct {
	Octave        int     // octave of the root, C4 = 60
	Tempo         float64 // beats per minute
	DurationBeats float64
	Velocity      uint8
}

// Merge returns o with any value set in req taking precedence
func (o MIDIOptions) Merge(req models.MIDIRequest) MIDIOptions {
	if req.Octave != nil {
		o.Octave = *req.Octave
	}
	if req.Tempo > 0 {
		o.Tempo = req.Tempo
	}
	if req.Duration > 0 {
		o.DurationBeats = req.Duration
	}
	if req.Velocity > 0 {
		o.Velocity = req.Velocity
	}
	return o
}

func (o MIDIOptions) withDefaults() MIDIOptions {
	if o.Tempo <= 0 {
		o.Tempo = 120
	}
	if o.DurationBeats <= 0 {
		o.DurationBeats = defaultDurationBeats
	}
	if o.Velocity == 0 {
		o.Velocity = defaultVelocity
	}
	return o
}

func (o MIDIOptions) validate() error {
	if o.DurationBeats < minDurationBeats {
		return fmt.Errorf("%w: duration %g is shorter than 1/64 beat", ErrInvalidMIDI, o.DurationBeats)
	}
	if o.DurationBeats > maxDurationBeats {
		return fmt.Errorf("%w: duration %.2f exceeds %.0f beats", ErrInvalidMIDI, o.DurationBeats, maxDurationBeats)
	}
	if o.Velocity > midiMaxKey {
		return fmt.Errorf("%w: velocity %d exceeds 127", ErrInvalidMIDI, o.Velocity)
	}
	return nil
}

// NoteEvents voices the chord as a block: the root sits in opts.Octave and
// every other member lies its interval's semitones above it, so extensions
// land in the next octave.
func (c *Chord) NoteEvents(opts MIDIOptions) ([]models.NoteEvent, error) {
	opts = opts.withDefaults()
	rootKey := c.Root.MIDIKey(opts.Octave)

	events := make([]models.NoteEvent, 0, len(c.Intervals))
	for i, iv := range c.Intervals {
		key := rootKey + iv.Semitones
		if key < 0 || key > midiMaxKey {
			return nil, fmt.Errorf("%w: %s in octave %d is key %d", ErrNoteOutOfRange, c.Pitches[i], opts.Octave, key)
		}
		events = append(events, models.NoteEvent{
			MidiNoteNumber: key,
			Velocity:       int(opts.Velocity),
			StartBeats:     0,
			DurationBeats:  opts.DurationBeats,
		})
	}
	return events, nil
}

// RenderMIDI writes the chord as a single-track SMF named after its symbol
func (s *ChordService) RenderMIDI(ctx context.Context, chord *Chord, opts MIDIOptions) ([]byte, error) {
	start := time.Now()
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	events, err := chord.NoteEvents(opts)
	if err != nil {
		return nil, err
	}

	data, err := WriteSMF(chord.Symbol, opts.Tempo, events)
	if err != nil {
		return nil, err
	}

	if s.sentry != nil {
		s.sentry.RecordMIDIExport(ctx, len(events), len(data), time.Since(start))
	}
	s.cloudwatch.RecordMIDIExport(len(data))
	return data, nil
}

type timedMessage struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// WriteSMF encodes note events into a single-track Standard MIDI File
func WriteSMF(name string, tempo float64, events []models.NoteEvent) ([]byte, error) {
	s := smf.New()
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unexpected SMF time format %v", s.TimeFormat)
	}
	perBeat := float64(ticks.Ticks4th())
	toTicks := func(beats float64) uint32 {
		return uint32(math.Round(beats * perBeat))
	}

	msgs := make([]timedMessage, 0, len(events)*2)
	for _, ev := range events {
		key := uint8(ev.MidiNoteNumber)
		on := toTicks(ev.StartBeats)
		// a note always lasts at least one tick, else its off sorts first
		off := max(toTicks(ev.StartBeats+ev.DurationBeats), on+1)
		msgs = append(msgs,
			timedMessage{tick: on, msg: midi.NoteOn(midiChannel, key, uint8(ev.Velocity))},
			timedMessage{tick: off, off: true, msg: midi.NoteOff(midiChannel, key)},
		)
	}

	// note offs before note ons on the same tick so repeated keys retrigger
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, smf.MetaTempo(tempo))

	var last uint32
	for _, m := range msgs {
		track.Add(m.tick-last, m.msg)
		last = m.tick
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return buf.Bytes(), nil
}
