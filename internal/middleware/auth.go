package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dt-hbtn/chordgen-api/internal/config"
	"github.com/dt-hbtn/chordgen-api/internal/logger"
	"github.com/dt-hbtn/chordgen-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerPrefix = "Bearer"
	basicRealm   = `Basic realm="chordgen"`
	tokenIssuer  = "chordgen-api"
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticate accepts HTTP Basic credentials checked against store, or a
// bearer token signed with cfg.JWTSecret when tokens are enabled.
func Authenticate(store services.CredentialStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], bearerPrefix) {
			if !cfg.TokensEnabled() {
				unauthorized(c, "Bearer tokens are not enabled")
				return
			}
			claims, err := ParseToken(cfg, parts[1])
			if err != nil {
				unauthorized(c, "Invalid or expired token")
				return
			}
			c.Set("username", claims.Username)
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, "Authorization required")
			return
		}

		user, err := store.Authenticate(c.Request.Context(), username, password)
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Warn("Rejected credentials", logger.Fields{
				"request_id": c.GetString("request_id"),
				"username":   username,
			})
			unauthorized(c, "Invalid username or password")
			return
		}
		if err != nil {
			logger.Error("Credential lookup failed", err, logger.WithContext(c))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("username", user.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", basicRealm)
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// IssueToken signs an HS256 access token for username
func IssueToken(cfg *config.Config, username string, now time.Time) (string, time.Time, error) {
	if !cfg.TokensEnabled() {
		return "", time.Time{}, fmt.Errorf("token signing is not configured")
	}

	expiresAt := now.Add(cfg.JWTTTL)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token produced by IssueToken
func ParseToken(cfg *config.Config, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Username == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetCurrentUsername retrieves the authenticated username from context
func GetCurrentUsername(c *gin.Context) (string, bool) {
	username := c.GetString("username")
	return username, username != ""
}
