package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mrivera-dev/carvalue-backend/pkg/config"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the signed payload carried by the session cookie. The user id is
// the sole authorization key; everything else is resolved per request.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues, reads, and clears the signed session cookie. The cookie is
// self-contained: signout clears the client copy, nothing is revoked
// server-side.
type Manager struct {
	cfg config.SessionConfig
}

// NewManager validates the configuration and returns a cookie manager.
func NewManager(cfg config.SessionConfig) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.CookieName == "" {
		return nil, fmt.Errorf("session cookie name is required")
	}
	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}
	return &Manager{cfg: cfg}, nil
}

// Issue mints a signed token for the user and sets it as the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, userID uint) error {
	if userID == 0 {
		return fmt.Errorf("user id is required")
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL())),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the user id embedded in the request's session cookie. A
// missing cookie yields (0, nil); a tampered or expired one yields an error.
func (m *Manager) Read(r *http.Request) (uint, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return 0, nil
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(
		cookie.Value,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
	)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName exposes the configured cookie name for tests and middleware.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}
