package handlers

import (
	"net/http"

	"monametro/internal/domain"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Users repositories.UserRepository
}

// GET /api/profile — always the caller's own record.
func (h ProfileHandler) Get(c *gin.Context) {
	user, err := h.Users.GetByID(middleware.GetUserID(c))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.InternalError{Msg: "failed to load profile", Err: err})
		return
	}

	c.JSON(http.StatusOK, user.ToPublic())
}
