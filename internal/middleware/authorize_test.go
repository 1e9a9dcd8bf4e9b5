package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/models"
)

func runRequireRoles(t *testing.T, user *models.User, allowed ...models.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		c.Set(currentUserKey, *user)
	}

	RequireRoles(allowed...)(c)
	return w
}

func TestRequireRolesAllows(t *testing.T) {
	user := models.User{UserID: "user_1", Role: models.UserRoleBoardMember}
	w := runRequireRoles(t, &user, models.UserRoleAdmin, models.UserRoleBoardMember)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
}

func TestRequireRolesForbids(t *testing.T) {
	user := models.User{UserID: "user_1", Role: models.UserRoleResident}
	w := runRequireRoles(t, &user, models.UserRoleAdmin)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	w := runRequireRoles(t, nil, models.UserRoleAdmin)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}
