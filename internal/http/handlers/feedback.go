package handlers

import (
	"net/http"
	"strings"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"
	"monametro/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	Feedback repositories.FeedbackRepository
	Users    repositories.UserRepository
}

type feedbackRequest struct {
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// POST /api/feedback (any role except admin)
func (h FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		RespondDomainError(c, domain.ValidationError{Field: "message", Msg: "message is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		RespondDomainError(c, domain.ValidationError{Field: "rating", Msg: "rating must be between 1 and 5"})
		return
	}

	userID := middleware.GetUserID(c)

	// Feedback messages carry the submitter's name so the admin view reads
	// naturally even if the account is later renamed.
	if user, err := h.Users.GetByID(userID); err == nil {
		name := strings.TrimSpace(user.FirstName + " " + user.LastName)
		if name != "" && !strings.HasPrefix(message, name+":") {
			message = name + ": " + message
		}
	}

	id, err := h.Feedback.Create(models.Feedback{
		UserID:  userID,
		Message: message,
		Rating:  req.Rating,
	})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to save feedback", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "feedback", "submit", "feedback_id="+utils.FormatID(id))
	c.JSON(http.StatusCreated, gin.H{"feedbackId": id, "message": "feedback submitted"})
}

// GET /api/feedback (admin only)
func (h FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.Feedback.ListWithUsers()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list feedback", Err: err})
		return
	}
	c.JSON(http.StatusOK, feedback)
}
