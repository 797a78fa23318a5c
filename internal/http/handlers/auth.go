package handlers

import (
	"net/http"
	"time"

	"monametro/internal/http/middleware"
	"monametro/internal/repositories"
	"monametro/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users    repositories.UserRepository
	Secret   []byte
	TokenTTL time.Duration
}

func (h AuthHandler) service(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     h.Users,
		Secret:    h.Secret,
		TokenTTL:  h.TokenTTL,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/signup
func (h AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.service(c).SignUp(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    user,
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/signin
func (h AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := h.service(c).SignIn(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
