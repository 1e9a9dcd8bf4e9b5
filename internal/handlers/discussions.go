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

type createDiscussionRequest struct {
	Title    string `json:"title" binding:"required,min=5,max=200"`
	Content  string `json:"content" binding:"required,min=10"`
	Category string `json:"category"`
}

func (h HandlerSet) CreateDiscussion(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req createDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	now := time.Now().UTC()
	discussion := models.Discussion{
		DiscussionID: ids.NewPrefixed("disc"),
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		AuthorID:     user.UserID,
		AuthorName:   user.Name,
		Replies:      []models.Reply{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.discussions.Insert(c.Request.Context(), discussion); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"discussion": discussion})
}

func (h HandlerSet) ListDiscussions(c *gin.Context) {
	discussions, err := h.discussions.List(c.Request.Context(), c.Query("category"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"discussions": discussions})
}

type replyRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

func (h HandlerSet) ReplyToDiscussion(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := models.Reply{
		ReplyID:   ids.NewPrefixed("reply"),
		UserID:    user.UserID,
		UserName:  user.Name,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.discussions.PushReply(c.Request.Context(), c.Param("discussionId"), reply); err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discussion_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
