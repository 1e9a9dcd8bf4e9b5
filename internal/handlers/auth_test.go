package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/middleware"
)

func findSessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSetSessionCookieContract(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	setSessionCookie(c, "session_abc123")

	cookie := findSessionCookie(t, w)
	if cookie.Value != "session_abc123" {
		t.Fatalf("value %q", cookie.Value)
	}
	if cookie.MaxAge != sessionCookieMaxAge {
		t.Fatalf("max-age %d, want %d", cookie.MaxAge, sessionCookieMaxAge)
	}
	if cookie.Path != "/" {
		t.Fatalf("path %q, want /", cookie.Path)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if !cookie.Secure {
		t.Fatal("cookie must be Secure")
	}
	if cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("samesite %v, want None", cookie.SameSite)
	}
}

func TestClearSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	clearSessionCookie(c)

	cookie := findSessionCookie(t, w)
	if cookie.Value != "" {
		t.Fatalf("value %q, want empty", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("max-age %d, want negative", cookie.MaxAge)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatal("clearing must keep the HttpOnly and Secure attributes")
	}
}
