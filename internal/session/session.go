// Package session issues and verifies the signed tokens that correlate a
// browser to a logged-in user. The token travels in a cookie and is opaque
// to the client; the server never stores it.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"miniblog/internal/config"
)

const CookieName = "session"

type Manager struct {
	secret   []byte
	duration time.Duration
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:   []byte(cfg.SecretKey),
		duration: cfg.SessionDuration,
	}
}

// Issue signs a fresh token bound to the user's id.
func (m *Manager) Issue(userID int64) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the token signature and expiry and returns the bound user id.
func (m *Manager) Parse(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return 0, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid session claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("session token has no user id")
	}

	return int64(userID), nil
}

func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.duration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie. Clearing an absent cookie is fine,
// so logout stays idempotent.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest returns the session token carried by the request, or ""
// for anonymous clients.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
