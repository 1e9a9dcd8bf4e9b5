package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/middleware"
)

func (h HandlerSet) ListNotifications(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	notifications, err := h.notifications.ListByRecipient(c.Request.Context(), user.UserID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h HandlerSet) MarkNotificationRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("notificationId"), user.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
