package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func newAuthHandler(t *testing.T, password string) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	users := &fakeUserStore{user: &models.User{
		ID:           "user-1",
		Email:        "doctor@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}}
	return NewAuthHandler(users, []byte("test-secret"), false)
}

func login(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	h := newAuthHandler(t, "correct-horse")

	rec := login(t, h, `{"email": "doctor@example.com", "password": "correct-horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value == "" {
		t.Error("session cookie is empty")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newAuthHandler(t, "correct-horse")

	rec := login(t, h, `{"email": "doctor@example.com", "password": "battery-staple"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	h := newAuthHandler(t, "correct-horse")

	rec := login(t, h, `{"email": "stranger@example.com", "password": "whatever"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSession_NoCookie(t *testing.T) {
	h := newAuthHandler(t, "pw")
	protected := h.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/posts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSession_BadToken(t *testing.T) {
	h := newAuthHandler(t, "pw")
	protected := h.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSession_ValidCookie(t *testing.T) {
	h := newAuthHandler(t, "correct-horse")
	loginRec := login(t, h, `{"email": "doctor@example.com", "password": "correct-horse"}`)
	cookie := sessionCookie(t, loginRec)

	var gotUserID string
	protected := h.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/admin/posts", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("user id in context = %q, want %q", gotUserID, "user-1")
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newAuthHandler(t, "pw")

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest("POST", "/api/logout", nil))

	cookie := sessionCookie(t, rec)
	if cookie.MaxAge >= 0 {
		t.Errorf("cookie MaxAge = %d, want negative to expire it", cookie.MaxAge)
	}
}
