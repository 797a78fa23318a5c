package handlers

import (
	"net/http"
	"strconv"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"
	"monametro/internal/utils"

	"github.com/gin-gonic/gin"
)

type BusHandler struct {
	Buses repositories.BusRepository
}

// GET /api/buses/active
// Admin callers get the full rows plus a count; everyone else gets the
// reduced projection without status.
func (h BusHandler) Active(c *gin.Context) {
	buses, err := h.Buses.ListActive()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list buses", Err: err})
		return
	}

	if middleware.GetUserRole(c) == domain.RoleAdmin {
		c.JSON(http.StatusOK, gin.H{
			"count": len(buses),
			"buses": buses,
		})
		return
	}

	public := make([]models.PublicBus, 0, len(buses))
	for _, b := range buses {
		public = append(public, b.ToPublic())
	}
	c.JSON(http.StatusOK, gin.H{"buses": public})
}

// GET /api/bus-schedule (public)
func (h BusHandler) Schedule(c *gin.Context) {
	buses, err := h.Buses.ListActive()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to load schedule", Err: err})
		return
	}

	schedule := make([]gin.H, 0, len(buses))
	for _, b := range buses {
		schedule = append(schedule, gin.H{
			"busId":         b.BusID,
			"pickup":        b.Origin,
			"destination":   b.Destination,
			"via":           b.Via,
			"departureTime": b.DepartureTime,
			"arrivalTime":   b.ArrivalTime,
			"cost":          b.Cost,
		})
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

type busStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/buses/:id/status (admin)
func (h BusHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid bus id"})
		return
	}

	var req busStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Status != models.BusStatusActive && req.Status != models.BusStatusInactive {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "status must be active or inactive"})
		return
	}

	if err := h.Buses.SetStatus(id, req.Status); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.InternalError{Msg: "failed to update bus", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "buses", "set_status", "bus_id="+utils.FormatID(id)+" status="+req.Status)
	c.JSON(http.StatusOK, gin.H{"busId": id, "status": req.Status})
}
