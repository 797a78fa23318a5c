package handlers

import (
	"net/http"

	"monametro/internal/domain"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"

	"github.com/gin-gonic/gin"
)

const (
	upcomingLimitAdmin = 10
	upcomingLimitUser  = 3
	recentLimitAdmin   = 10
	recentLimitUser    = 5
)

type BookingHandler struct {
	Bookings repositories.BookingRepository
}

// GET /api/bookings/upcoming
// Admin sees everyone's bookings with passenger identity; a passenger sees
// only their own future trips.
func (h BookingHandler) Upcoming(c *gin.Context) {
	if middleware.GetUserRole(c) == domain.RoleAdmin {
		bookings, err := h.Bookings.ListUpcomingAll(upcomingLimitAdmin)
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "failed to list bookings", Err: err})
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := h.Bookings.ListUpcomingForUser(middleware.GetUserID(c), upcomingLimitUser)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list bookings", Err: err})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/recent
func (h BookingHandler) Recent(c *gin.Context) {
	if middleware.GetUserRole(c) == domain.RoleAdmin {
		bookings, err := h.Bookings.ListRecentAll(recentLimitAdmin)
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "failed to list bookings", Err: err})
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := h.Bookings.ListRecentForUser(middleware.GetUserID(c), recentLimitUser)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list bookings", Err: err})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
