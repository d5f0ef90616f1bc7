// internal/session/session.go
//
// Signed session cookie.
//
// Context
//   The hosted auth provider authenticates reviewers and hands us the user
//   ID and email.  Manager stores them in a cookie named "trampo_session":
//
//      base64url(json payload) "." base64url(HMAC_SHA256(key, payload))
//
//   The payload is signed, not encrypted; it holds nothing secret.  Expiry
//   lives inside the signed payload so a replayed cookie dies on time even
//   if the browser keeps it.
//
//   Manager.Load is chi-compatible middleware that attaches the user to the
//   request context (internal/auth).  Requests without a valid cookie pass
//   through anonymously; access checks belong to internal/acl.
//
//------------------------------------------------------------------------------

package session

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/auth"
)

const (
	CookieName = "trampo_session"
	minKeyLen  = 32
	defaultTTL = 12 * time.Hour
)

// Session is the signed cookie payload.
type Session struct {
	UserID  string    `json:"uid"`
	Email   string    `json:"email"`
	Expires time.Time `json:"exp"`
}

// Manager issues and verifies session cookies.  Safe for concurrent use.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewManager returns a Manager signing with key.  A key shorter than 32
// bytes is replaced by a random one and a warning is logged.
func NewManager(key []byte, ttl time.Duration) *Manager {
	if len(key) < minKeyLen {
		key = make([]byte, minKeyLen)
		_, _ = rand.Read(key)
		zap.S().Warnw("security.session_key not set, using ephemeral key",
			"effect", "sessions die on restart")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{key: append([]byte(nil), key...), ttl: ttl, now: time.Now}
}

// Issue sets a cookie for userID / email.  Called by the auth provider
// callback once the user has been authenticated.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, userID, email string) error {
	if userID == "" {
		return errors.New("session: empty user id")
	}
	s := Session{UserID: userID, Email: email, Expires: m.now().Add(m.ttl).UTC()}
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    enc(payload) + "." + enc(m.sign(payload)),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.Expires,
	})
	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Get returns the session carried by r.  ok == false when the cookie is
// missing, forged, or expired.
func (m *Manager) Get(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	p64, s64, found := strings.Cut(c.Value, ".")
	if !found {
		return nil, false
	}
	payload, err1 := base64.RawURLEncoding.DecodeString(p64)
	sig, err2 := base64.RawURLEncoding.DecodeString(s64)
	if err1 != nil || err2 != nil || !hmac.Equal(sig, m.sign(payload)) {
		return nil, false
	}

	var s Session
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&s); err != nil || s.UserID == "" {
		return nil, false
	}
	if !m.now().Before(s.Expires) {
		return nil, false
	}
	return &s, true
}

// Load attaches the session user, if any, to the request context.
func (m *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := m.Get(r); ok {
			r = r.WithContext(auth.WithUser(r.Context(), auth.User{ID: s.UserID, Email: s.Email}))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Manager) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	return mac.Sum(nil)
}

func enc(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }
