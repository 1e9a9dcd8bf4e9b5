package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/ids"
	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/repository"
)

// UploadReceipt stores a proof-of-payment file for one of the caller's own
// payments.
func (h HandlerSet) UploadReceipt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	paymentID := c.PostForm("payment_id")
	if paymentID == "" {
		paymentID = c.Query("payment_id")
	}
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_id required"})
		return
	}

	// Ownership check before anything touches storage.
	if _, err := h.payments.FindForUser(c.Request.Context(), paymentID, user.UserID); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	receiptID := ids.NewPrefixed("receipt")
	_, fileURL, err := h.store.PutFile(
		c.Request.Context(),
		h.store.ReceiptBucket(),
		receiptID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		h.log.Error().Err(err).Str("payment_id", paymentID).Msg("receipt upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload_failed"})
		return
	}

	receipt := models.Receipt{
		ReceiptID: receiptID,
		PaymentID: paymentID,
		UserID:    user.UserID,
		FileURL:   fileURL,
		FileName:  header.Filename,
		FileSize:  header.Size,
		CreatedAt: time.Now().UTC(),
	}
	if notes := c.PostForm("notes"); notes != "" {
		receipt.Notes = &notes
	}

	if err := h.receipts.Insert(c.Request.Context(), receipt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

func (h HandlerSet) ListReceipts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	receipts, err := h.receipts.ListByUser(c.Request.Context(), user.UserID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}
