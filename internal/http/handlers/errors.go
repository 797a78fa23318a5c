package handlers

import (
	"errors"
	"net/http"

	"monametro/internal/domain"
	"monametro/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Store-level
// failures collapse to a safe 500; detail stays in the server log.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsAuth(err):
		status := http.StatusUnauthorized
		code := "authentication_required"
		var authErr domain.AuthError
		if errors.As(err, &authErr) && authErr.TokenPresented {
			status = http.StatusForbidden
			code = "token_invalid"
		}
		respondError(c, status, code, err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsPayment(err):
		respondError(c, http.StatusInternalServerError, "payment_failed", "payment processing failed")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
