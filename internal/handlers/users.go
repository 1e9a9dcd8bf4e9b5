package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"barangayconnect/api/internal/middleware"
)

type profileUpdateRequest struct {
	Name       *string `json:"name"`
	UnitNumber *string `json:"unit_number"`
	Phone      *string `json:"phone"`
	Picture    *string `json:"picture"`
}

// UpdateProfile applies the provided fields only. Role and email are not
// editable through this route.
func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.UnitNumber != nil {
		fields["unit_number"] = *req.UnitNumber
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Picture != nil {
		fields["picture"] = *req.Picture
	}

	if len(fields) > 0 {
		if err := h.users.UpdateFields(c.Request.Context(), user.UserID, fields); err != nil {
			h.log.Error().Err(err).Str("user_id", user.UserID).Msg("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}
	}

	updated, err := h.users.FindByID(c.Request.Context(), user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	updated.PasswordHash = ""

	c.JSON(http.StatusOK, gin.H{"user": updated})
}
