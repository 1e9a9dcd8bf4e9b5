package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/models"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), 1000)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h HandlerSet) AdminAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	totalUsers, err := h.users.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	totalPayments, err := h.payments.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	successfulPayments, err := h.payments.CountByStatus(ctx, models.PaymentStatusSuccessful)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	totalRevenue, err := h.payments.SumByStatus(ctx, models.PaymentStatusSuccessful)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":         totalUsers,
		"total_payments":      totalPayments,
		"successful_payments": successfulPayments,
		"total_revenue":       totalRevenue,
	})
}
