package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"barangayconnect/api/internal/config"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/repository"
	"barangayconnect/api/internal/security"
	"barangayconnect/api/internal/service"
	"barangayconnect/api/internal/timeutil"
)

type userStoreStub struct {
	users map[string]models.User
}

func (s *userStoreStub) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *userStoreStub) FindByID(_ context.Context, userID string) (models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *userStoreStub) Insert(_ context.Context, user models.User) error {
	s.users[user.UserID] = user
	return nil
}

func (s *userStoreStub) UpdateFields(context.Context, string, bson.M) error { return nil }

func (s *userStoreStub) List(context.Context, int64) ([]models.User, error) { return nil, nil }

func (s *userStoreStub) Count(context.Context) (int64, error) { return 0, nil }

type sessionStoreStub struct {
	sessions map[string]models.Session
}

func (s *sessionStoreStub) FindByHandle(_ context.Context, handle string) (models.Session, error) {
	row, ok := s.sessions[handle]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return row, nil
}

func (s *sessionStoreStub) Insert(_ context.Context, session models.Session) error {
	s.sessions[session.SessionToken] = session
	return nil
}

func (s *sessionStoreStub) DeleteByHandle(_ context.Context, handle string) (int64, error) {
	delete(s.sessions, handle)
	return 1, nil
}

const testSecret = "middleware-test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *userStoreStub, *sessionStoreStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &userStoreStub{users: make(map[string]models.User)}
	sessions := &sessionStoreStub{sessions: make(map[string]models.Session)}

	cfg := &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret:  testSecret,
			TokenTTL:   time.Hour,
			SessionTTL: time.Hour,
		},
	}

	auth := service.NewAuthService(users, sessions, nil, cfg, zerolog.Nop())

	r := gin.New()
	r.GET("/me", Auth(auth), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	return r, users, sessions
}

func seedUser(users *userStoreStub) models.User {
	user := models.User{
		UserID: "user_mw_test",
		Email:  "dana@example.com",
		Name:   "Dana Cruz",
		Role:   models.UserRoleResident,
	}
	users.users[user.UserID] = user
	return user
}

func TestAuthNoCredential(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not_authenticated") {
		t.Fatalf("body %q", w.Body.String())
	}
}

func TestAuthSessionCookie(t *testing.T) {
	r, users, sessions := newAuthRouter(t)
	user := seedUser(users)

	sessions.sessions["session_live"] = models.Session{
		SessionToken: "session_live",
		UserID:       user.UserID,
		ExpiresAt:    timeutil.FormatStamp(time.Now().Add(time.Hour)),
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session_live"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %q", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), user.UserID) {
		t.Fatalf("body %q", w.Body.String())
	}
}

func TestAuthBearerToken(t *testing.T) {
	r, users, _ := newAuthRouter(t)
	user := seedUser(users)

	token, err := security.IssueAccessToken(testSecret, user.UserID, time.Hour, 0)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %q", w.Code, w.Body.String())
	}
}

func TestAuthCookieTakesPrecedence(t *testing.T) {
	r, users, sessions := newAuthRouter(t)
	user := seedUser(users)

	sessions.sessions["session_stale"] = models.Session{
		SessionToken: "session_stale",
		UserID:       user.UserID,
		ExpiresAt:    timeutil.FormatStamp(time.Now().Add(-time.Hour)),
	}
	token, err := security.IssueAccessToken(testSecret, user.UserID, time.Hour, 0)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Both carriers present: the expired cookie decides, the valid bearer
	// token is never consulted.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session_stale"})
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "session_expired") {
		t.Fatalf("body %q", w.Body.String())
	}
}

func TestAuthBearerSessionHandleRejected(t *testing.T) {
	r, users, sessions := newAuthRouter(t)
	user := seedUser(users)

	sessions.sessions["session_live"] = models.Session{
		SessionToken: "session_live",
		UserID:       user.UserID,
		ExpiresAt:    timeutil.FormatStamp(time.Now().Add(time.Hour)),
	}

	// A live handle in the bearer header is still rejected: the header path
	// never consults the session store.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer session_live")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_token") {
		t.Fatalf("body %q", w.Body.String())
	}
}

func TestExtractCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)

	build := func(cookie, header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != "" {
			c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		}
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	if cred, fromCookie := extractCredential(build("abc", "")); cred != "abc" || !fromCookie {
		t.Fatalf("cookie only: got (%q, %v)", cred, fromCookie)
	}
	if cred, fromCookie := extractCredential(build("", "Bearer xyz")); cred != "xyz" || fromCookie {
		t.Fatalf("bearer only: got (%q, %v)", cred, fromCookie)
	}
	if cred, fromCookie := extractCredential(build("abc", "Bearer xyz")); cred != "abc" || !fromCookie {
		t.Fatalf("both carriers: got (%q, %v)", cred, fromCookie)
	}
	if cred, _ := extractCredential(build("", "Basic dXNlcg==")); cred != "" {
		t.Fatalf("non-bearer scheme: got %q", cred)
	}
	if cred, _ := extractCredential(build("", "")); cred != "" {
		t.Fatalf("no carrier: got %q", cred)
	}
}
