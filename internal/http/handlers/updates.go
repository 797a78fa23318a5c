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

const updatesFeedLimit = 50

type UpdateHandler struct {
	Updates repositories.UpdateRepository
}

type busUpdateRequest struct {
	BusID   int64  `json:"busId"`
	Message string `json:"message"`
}

// POST /api/bus-updates (driver only)
func (h UpdateHandler) Submit(c *gin.Context) {
	var req busUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.BusID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "busId", Msg: "busId is required"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		RespondDomainError(c, domain.ValidationError{Field: "message", Msg: "message is required"})
		return
	}

	id, err := h.Updates.Create(models.BusUpdate{
		BusID:    req.BusID,
		DriverID: middleware.GetUserID(c),
		Message:  message,
	})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to save update", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "updates", "submit", "update_id="+utils.FormatID(id))
	c.JSON(http.StatusCreated, gin.H{"updateId": id, "message": "update posted"})
}

// GET /api/bus-updates (public)
func (h UpdateHandler) List(c *gin.Context) {
	updates, err := h.Updates.ListRecent(updatesFeedLimit)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list updates", Err: err})
		return
	}
	c.JSON(http.StatusOK, updates)
}
