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

type createEventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	EventDate    time.Time `json:"event_date" binding:"required"`
	Location     *string   `json:"location"`
	MaxAttendees *int      `json:"max_attendees"`
}

func (h HandlerSet) CreateEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := models.Event{
		EventID:      ids.NewPrefixed("event"),
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate.UTC(),
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		Attendees:    []string{},
		CreatedBy:    user.UserID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.events.Insert(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h HandlerSet) ListEvents(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h HandlerSet) AttendEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	eventID := c.Param("eventId")
	event, err := h.events.FindByID(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	for _, attendee := range event.Attendees {
		if attendee == user.UserID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "already_registered"})
			return
		}
	}

	if event.MaxAttendees != nil && len(event.Attendees) >= *event.MaxAttendees {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_full"})
		return
	}

	if err := h.events.AddAttendee(c.Request.Context(), eventID, user.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully registered for event"})
}
