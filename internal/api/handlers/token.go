package handlers

import (
	"net/http"
	"time"

	"github.com/dt-hbtn/chordgen-api/internal/config"
	"github.com/dt-hbtn/chordgen-api/internal/logger"
	"github.com/dt-hbtn/chordgen-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	cfg *config.Config
}

func NewTokenHandler(cfg *config.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// Issue exchanges already-verified credentials for a bearer token
func (h *TokenHandler) Issue(c *gin.Context) {
	username, ok := middleware.GetCurrentUsername(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	now := time.Now()
	token, expiresAt, err := middleware.IssueToken(h.cfg, username, now)
	if err != nil {
		logger.Error("Failed to issue token", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	})
}
