package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func roundTrip(t *testing.T, s *Store, prev *http.Cookie, category, text string) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if prev != nil {
		r.AddCookie(prev)
	}
	w := httptest.NewRecorder()

	if err := s.Add(w, r, category, text); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestAddThenPop(t *testing.T) {
	t.Parallel()

	s := NewStore("secret", time.Minute)
	c := roundTrip(t, s, nil, Success, "User created")
	c = roundTrip(t, s, c, Warning, "second")

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.AddCookie(c)
	w := httptest.NewRecorder()

	got := s.Pop(w, r)
	want := []Message{{Category: Success, Text: "User created"}, {Category: Warning, Text: "second"}}
	if len(got) != len(want) {
		t.Fatalf("messages mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d mismatch: got %v want %v", i, got[i], want[i])
		}
	}

	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be expired, got %+v", cleared)
	}
}

func TestPop_NoCookie(t *testing.T) {
	t.Parallel()

	s := NewStore("secret", time.Minute)
	w := httptest.NewRecorder()

	if got := s.Pop(w, httptest.NewRequest(http.MethodGet, "/", nil)); got != nil {
		t.Fatalf("expected no messages, got %v", got)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("expected no cookie to be written")
	}
}

func TestPop_WrongSecret(t *testing.T) {
	t.Parallel()

	c := roundTrip(t, NewStore("right", time.Minute), nil, Success, "hi")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	if got := NewStore("wrong", time.Minute).Pop(httptest.NewRecorder(), r); got != nil {
		t.Fatalf("expected tampered cookie to be ignored, got %v", got)
	}
}

func TestPop_Expired(t *testing.T) {
	t.Parallel()

	s := NewStore("secret", time.Minute)
	c := roundTrip(t, s, nil, Success, "hi")

	s.now = func() time.Time { return time.Now().Add(time.Hour) }

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	if got := s.Pop(httptest.NewRecorder(), r); got != nil {
		t.Fatalf("expected expired cookie to be ignored, got %v", got)
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	if _, err := parseToken("eyJhbGciOiJub25lIn0.eyJtc2dzIjpbXX0.", []byte("k"), time.Now()); err == nil {
		t.Fatalf("expected unsigned token to be rejected")
	}
}
