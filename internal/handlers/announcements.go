package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"barangayconnect/api/internal/ids"
	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/models"
)

type createAnnouncementRequest struct {
	Title    string   `json:"title" binding:"required,min=3,max=200"`
	Content  string   `json:"content" binding:"required,min=10"`
	Priority string   `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	Tags     []string `json:"tags"`
}

func (h HandlerSet) CreateAnnouncement(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	now := time.Now().UTC()
	announcement := models.Announcement{
		AnnouncementID: ids.NewPrefixed("ann"),
		Title:          req.Title,
		Content:        req.Content,
		Priority:       req.Priority,
		Tags:           req.Tags,
		AuthorID:       user.UserID,
		AuthorName:     user.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.announcements.Insert(c.Request.Context(), announcement); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

func (h HandlerSet) ListAnnouncements(c *gin.Context) {
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	announcements, err := h.announcements.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

type draftAnnouncementRequest struct {
	Prompt string `json:"prompt" binding:"required,min=10,max=500"`
}

func (h HandlerSet) DraftAnnouncement(c *gin.Context) {
	var req draftAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.assistService.DraftAnnouncement(c.Request.Context(), req.Prompt)
	if err != nil {
		h.log.Error().Err(err).Msg("announcement draft failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "draft_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
