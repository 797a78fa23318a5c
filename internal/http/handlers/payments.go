package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"monametro/internal/domain"
	"monametro/internal/http/middleware"
	"monametro/internal/repositories"
	"monametro/internal/services"
	"monametro/internal/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	DB        *sql.DB
	Payments  repositories.PaymentRepository
	Bookings  repositories.BookingRepository
	Users     repositories.UserRepository
	MinAmount float64
}

func (h PaymentHandler) service(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		DB:        h.DB,
		Payments:  h.Payments,
		MinAmount: h.MinAmount,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/payments
func (h PaymentHandler) Pay(c *gin.Context) {
	var req services.PayRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := h.service(c).Pay(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type topUpRequest struct {
	Amount float64 `json:"amount"`
}

// POST /api/wallet/topup
func (h PaymentHandler) TopUp(c *gin.Context) {
	var req topUpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	balance, err := h.service(c).TopUp(c.Request.Context(), middleware.GetUserID(c), req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"newBalance": balance})
}

// GET /api/wallet
func (h PaymentHandler) Wallet(c *gin.Context) {
	balance, err := h.Users.WalletBalance(middleware.GetUserID(c))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.InternalError{Msg: "failed to load wallet", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GET /api/payments/history
// Admin sees every payment; a passenger sees only their own.
func (h PaymentHandler) History(c *gin.Context) {
	if middleware.GetUserRole(c) == domain.RoleAdmin {
		payments, err := h.Payments.ListAll()
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "failed to list payments", Err: err})
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	payments, err := h.Payments.ListForUser(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to list payments", Err: err})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments/:id/receipt
// Owners and admins only; anyone else gets NotFound rather than a hint
// that the payment exists.
func (h PaymentHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid payment id"})
		return
	}

	payment, err := h.Payments.GetByID(id)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		RespondDomainError(c, domain.InternalError{Msg: "failed to load payment", Err: err})
		return
	}

	if middleware.GetUserRole(c) != domain.RoleAdmin && payment.UserID != middleware.GetUserID(c) {
		RespondDomainError(c, domain.NotFoundError{Resource: "payment"})
		return
	}

	svc := services.ReceiptService{
		Payments:  h.Payments,
		Bookings:  h.Bookings,
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to generate receipt", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "payment", "receipt", "payment_id="+utils.FormatID(id))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
