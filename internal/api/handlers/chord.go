package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dt-hbtn/chordgen-api/internal/config"
	"github.com/dt-hbtn/chordgen-api/internal/logger"
	"github.com/dt-hbtn/chordgen-api/internal/metrics"
	"github.com/dt-hbtn/chordgen-api/internal/models"
	"github.com/dt-hbtn/chordgen-api/internal/services"
	"github.com/dt-hbtn/chordgen-api/internal/theory"
	"github.com/gin-gonic/gin"
)

const (
	statusMessage = "chordgen API is up and running!"
	midiMediaType = "audio/midi"
)

type ChordHandler struct {
	service     *services.ChordService
	midiDefault services.MIDIOptions
}

func NewChordHandler(cfg *config.Config, service *services.ChordService) *ChordHandler {
	return &ChordHandler{
		service: service,
		midiDefault: services.MIDIOptions{
			Octave: cfg.MIDIDefaultOctave,
			Tempo:  cfg.MIDIDefaultTempo,
		},
	}
}

// Status is the authenticated liveness probe
func (h *ChordHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusMessage})
}

func (h *ChordHandler) Generate(c *gin.Context) {
	var req models.ChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "Chord generation failed", req.Quality, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MIDI renders the chord as a downloadable Standard MIDI File
func (h *ChordHandler) MIDI(c *gin.Context) {
	var req models.MIDIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	chord, err := h.service.Build(ctx, req.Root, req.Quality, req.Extensions)
	if err != nil {
		h.respondError(c, "Chord generation failed", req.Quality, err)
		return
	}

	data, err := h.service.RenderMIDI(ctx, chord, h.midiDefault.Merge(req))
	if err != nil {
		h.respondError(c, "MIDI export failed", chord.Quality, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, midiFilename(chord)))
	c.Data(http.StatusOK, midiMediaType, data)
}

func (h *ChordHandler) Qualities(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog())
}

// respondError sends caller mistakes back as 400 and reports everything else
func (h *ChordHandler) respondError(c *gin.Context, msg, quality string, err error) {
	fields := logger.WithContext(c)
	fields["quality"] = qualityTag(quality)

	if theory.IsInputError(err) || errors.Is(err, services.ErrNoteOutOfRange) || errors.Is(err, services.ErrInvalidMIDI) {
		fields["error"] = err.Error()
		logger.Debug("Rejected chord request", fields)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Error(msg, err, fields)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      "Internal server error",
		"request_id": c.GetString("request_id"),
	})
}

// qualityTag keeps Sentry tags to the table's quality names
func qualityTag(quality string) string {
	if _, ok := theory.LookupQuality(quality); !ok {
		return metrics.InvalidQuality
	}
	return strings.ToLower(quality)
}

// midiFilename uses the ASCII spelling so the header stays plain
func midiFilename(chord *services.Chord) string {
	name := chord.Root.ASCII() + "-" + chord.Quality
	name = strings.NewReplacer("/", "-", "+", "aug", "#", "s").Replace(name)
	return name + ".mid"
}
