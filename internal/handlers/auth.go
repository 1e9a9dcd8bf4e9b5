package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/service"
)

// Cookie contract: fixed name, HttpOnly, Secure, SameSite=None, path /, and
// a max-age matching the session row expiry window.
const sessionCookieMaxAge = 604800 // 7 days

func setSessionCookie(c *gin.Context, handle string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, handle, sessionCookieMaxAge, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
}

type registerRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Name       string  `json:"name" binding:"required"`
	UnitNumber *string `json:"unit_number"`
	Phone      *string `json:"phone"`
	Picture    *string `json:"picture"`
}

// RegisterUser creates a local account. No session row and no cookie here:
// only login and the federated callback establish sessions.
func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		UnitNumber: req.UnitNumber,
		Phone:      req.Phone,
		Picture:    req.Picture,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_registered"})
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
		"token_type":   "bearer",
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect_email_or_password"})
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	setSessionCookie(c, result.SessionHandle)

	c.JSON(http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
		"token_type":   "bearer",
	})
}

type federatedCallbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (h HandlerSet) GoogleCallback(c *gin.Context) {
	var req federatedCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	result, err := h.authService.FederatedLogin(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExchangeHandle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_session_id"})
			return
		}
		h.log.Error().Err(err).Msg("federated login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	setSessionCookie(c, result.SessionHandle)

	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout deletes the session row when the cookie is present and always
// clears the cookie. Deleting an already-gone row is fine.
func (h HandlerSet) Logout(c *gin.Context) {
	if handle, err := c.Cookie(middleware.SessionCookieName); err == nil && handle != "" {
		if err := h.authService.Logout(c.Request.Context(), handle); err != nil {
			h.log.Error().Err(err).Msg("session delete failed")
		}
	}

	clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
