package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/ids"
	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/models"
)

func (h HandlerSet) UploadDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	title := c.PostForm("title")
	category := c.PostForm("category")
	if title == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and category required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	documentID := ids.NewPrefixed("doc")
	_, fileURL, err := h.store.PutFile(
		c.Request.Context(),
		h.store.DocumentBucket(),
		documentID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		h.log.Error().Err(err).Str("title", title).Msg("document upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload_failed"})
		return
	}

	document := models.Document{
		DocumentID: documentID,
		Title:      title,
		Category:   category,
		FileURL:    fileURL,
		FileName:   header.Filename,
		FileSize:   header.Size,
		UploadedBy: user.UserID,
		CreatedAt:  time.Now().UTC(),
	}
	if description := c.PostForm("description"); description != "" {
		document.Description = &description
	}

	if err := h.documents.Insert(c.Request.Context(), document); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": document})
}

func (h HandlerSet) ListDocuments(c *gin.Context) {
	documents, err := h.documents.List(c.Request.Context(), c.Query("category"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}
