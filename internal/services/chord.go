package services

import (
	"context"
	"strings"
	"time"

	"github.com/dt-hbtn/chordgen-api/internal/metrics"
	"github.com/dt-hbtn/chordgen-api/internal/models"
	"github.com/dt-hbtn/chordgen-api/internal/theory"
)

// Chord is a validated, spelled chord ready to be rendered
type Chord struct {
	Symbol    string
	Quality   string
	Root      theory.Pitch
	Pitches   []theory.Pitch
	Intervals []theory.Interval
}

// Names returns the display pitch names, root first
func (c *Chord) Names() []string {
	names := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		names[i] = p.String()
	}
	return names
}

// ChordService spells chords and records what it did.
// Either metrics client may be nil.
type ChordService struct {
	sentry     *metrics.SentryMetrics
	cloudwatch *metrics.Client
}

func NewChordService(sentryMetrics *metrics.SentryMetrics, cloudwatch *metrics.Client) *ChordService {
	return &ChordService{
		sentry:     sentryMetrics,
		cloudwatch: cloudwatch,
	}
}

// Build spells the chord and, only if that succeeds, formats its symbol.
// A quality or extension the tables don't know never gets a symbol here.
func (s *ChordService) Build(ctx context.Context, root, quality string, extensions []string) (*Chord, error) {
	start := time.Now()
	chord, err := build(root, quality, extensions)

	label := metricQuality(chord, err)
	if s.sentry != nil {
		s.sentry.RecordChordGeneration(ctx, root, label, len(extensions), time.Since(start), err)
	}
	s.cloudwatch.RecordChordGeneration(label, len(extensions), err == nil)

	return chord, err
}

// metricQuality keeps metric labels to the table's quality names
func metricQuality(chord *Chord, err error) string {
	if err != nil || chord == nil {
		return metrics.InvalidQuality
	}
	return chord.Quality
}

func build(root, quality string, extensions []string) (*Chord, error) {
	pitches, err := theory.Spell(root, quality, extensions)
	if err != nil {
		return nil, err
	}
	ivs, err := theory.Intervals(quality, extensions)
	if err != nil {
		return nil, err
	}

	return &Chord{
		Symbol:    theory.Symbol(root, quality, extensions),
		Quality:   strings.ToLower(quality),
		Root:      pitches[0],
		Pitches:   pitches,
		Intervals: ivs,
	}, nil
}

// Generate answers POST /api/generate
func (s *ChordService) Generate(ctx context.Context, req models.ChordRequest) (*models.ChordResponse, error) {
	chord, err := s.Build(ctx, req.Root, req.Quality, req.Extensions)
	if err != nil {
		return nil, err
	}
	return &models.ChordResponse{
		ChordSymbol: chord.Symbol,
		Pitches:     chord.Names(),
	}, nil
}

// Catalog lists the quality and extension names the service accepts
func (s *ChordService) Catalog() models.QualitiesResponse {
	return models.QualitiesResponse{
		Qualities:  theory.Qualities(),
		Extensions: theory.Extensions(),
	}
}
