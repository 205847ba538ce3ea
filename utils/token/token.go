// Package token mints and validates the short-lived signed tokens used for
// the WebSocket handshake. Regular requests authenticate with the opaque
// session token; the upgrade request cannot rely on the session cookie
// cross-origin, so an authenticated client first exchanges its session for
// one of these.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMissing = errors.New("authentication required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ChannelClaims identifies the user and originating session behind a
// websocket connection.
type ChannelClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateChannelToken creates a signed token tied to a validated session.
func GenerateChannelToken(userID, sessionID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	claims := ChannelClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ValidateChannelToken parses and validates a channel token string.
func ValidateChannelToken(tokenString string, secret []byte) (*ChannelClaims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &ChannelClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(*ChannelClaims); ok && t.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Extract pulls a token from the query string or Authorization header.
// WebSocket clients pass it as ?token=, everything else uses Bearer.
func Extract(c *gin.Context) (string, error) {
	token := c.Query("token")
	if token != "" {
		return token, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
