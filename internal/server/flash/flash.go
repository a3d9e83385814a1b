// Package flash keeps one-shot UI notices between a redirecting POST and the
// page it redirects to. Messages travel in an HS256-signed cookie.
package flash

import (
	"net/http"
	"time"
)

const CookieName = "blogly_flash"

// Categories used by the handlers; templates map them to CSS classes.
const (
	Success = "success"
	Warning = "warning"
	Danger  = "danger"
)

type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

type Store struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Add appends a message to those already pending on the request and writes
// the resulting cookie.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category, text string) error {
	messages := append(s.read(r), Message{Category: category, Text: text})

	token, err := generateToken(messages, s.secret, s.ttl, s.now())
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and expires the cookie. Tampered or stale
// cookies yield no messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.read(r)
}

func (s *Store) read(r *http.Request) []Message {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	messages, err := parseToken(c.Value, s.secret, s.now())
	if err != nil {
		return nil
	}
	return messages
}
