package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // spans are no-ops when Sentry is not initialised
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordChordGeneration records a single spelling of root/quality/extensions.
// quality is a metric label, not raw input.
func (m *SentryMetrics) RecordChordGeneration(ctx context.Context, root, quality string, extensions int, duration time.Duration, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "chord.generate")
	defer span.Finish()

	span.SetTag("quality", quality)
	span.SetTag("success", fmt.Sprintf("%t", err == nil))

	span.SetData("root", root)
	span.SetData("extensions", extensions)
	span.SetData("duration_us", duration.Microseconds())

	if err != nil {
		span.Status = sentry.SpanStatusInvalidArgument
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}

	span.Description = fmt.Sprintf("Chord: %s", quality)
}

// RecordMIDIExport records the rendering of a chord to a MIDI file
func (m *SentryMetrics) RecordMIDIExport(ctx context.Context, notes, size int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "chord.midi")
	defer span.Finish()

	span.SetData("notes", notes)
	span.SetData("bytes", size)
	span.SetData("duration_us", duration.Microseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("MIDI Export: %d notes", notes)
}
