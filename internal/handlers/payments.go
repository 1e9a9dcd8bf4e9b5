package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/repository"
	"barangayconnect/api/internal/service"
)

type createPaymentRequest struct {
	Amount        float64              `json:"amount" binding:"required,gt=0"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	Description   string               `json:"description"`
	Metadata      map[string]string    `json:"metadata"`
}

func (h HandlerSet) CreatePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentService.CreatePayment(c.Request.Context(), service.CreatePaymentInput{
		User:          user,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		Metadata:      req.Metadata,
		HostURL:       requestBaseURL(c),
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.UserID).Msg("create payment failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment_failed"})
		return
	}

	if result.CheckoutURL != "" {
		c.JSON(http.StatusOK, gin.H{
			"payment_id":   result.PaymentID,
			"checkout_url": result.CheckoutURL,
			"session_id":   result.SessionID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_id": result.PaymentID,
		"status":     result.Status,
	})
}

func (h HandlerSet) ListPayments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	payments, err := h.payments.ListByUser(c.Request.Context(), user.UserID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h HandlerSet) GetPayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	payment, err := h.payments.FindForUser(c.Request.Context(), c.Param("paymentId"), user.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h HandlerSet) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.log.Error().Err(err).Msg("stripe webhook rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func requestBaseURL(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil && c.GetHeader("X-Forwarded-Proto") != "https" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
