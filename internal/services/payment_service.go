package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
	"monametro/internal/repositories"
	"monametro/internal/utils"

	"github.com/google/uuid"
)

// PaymentService owns the one real consistency contract in the portal:
// a payment and its bookings commit as a single unit, and wallet balances
// only ever move through single atomic statements.
type PaymentService struct {
	DB        *sql.DB
	Payments  repositories.PaymentRepository
	MinAmount float64
	RequestID string
}

type TripRequest struct {
	BusID         int64  `json:"busId"`
	Seats         int    `json:"seats"`
	DepartureTime string `json:"departureTime"`
	StartLocation string `json:"startLocation"`
	EndLocation   string `json:"endLocation"`
}

type PayRequest struct {
	Amount         float64       `json:"amount"`
	Method         string        `json:"method"`
	Trips          []TripRequest `json:"trips"`
	IdempotencyKey string        `json:"idempotencyKey"`
}

type PayResult struct {
	PaymentID int64     `json:"paymentId"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pay records one payment and one booking per trip atomically. Wallet-method
// payments debit the balance inside the same transaction: a reader sees the
// debit, the payment and all N bookings, or none of them.
func (s PaymentService) Pay(ctx context.Context, userID int64, req PayRequest) (PayResult, error) {
	trips, err := s.validatePay(req)
	if err != nil {
		return PayResult{}, err
	}

	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		prior, found, err := s.Payments.GetByIdempotencyKey(userID, key)
		if err != nil {
			return PayResult{}, domain.InternalError{Msg: "failed to check idempotency key", Err: err}
		}
		if found {
			utils.LogEvent(s.RequestID, "payment", "pay_replay", "idempotent replay payment_id="+utils.FormatID(prior.PaymentID))
			return PayResult{PaymentID: prior.PaymentID, Reference: prior.Reference, CreatedAt: prior.CreatedAt}, nil
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
	}
	defer tx.Rollback()

	createdAt := time.Now()
	reference := uuid.NewString()

	// NULLIF keeps the unique (user_id, idempotency_key) index out of the
	// way when no key was supplied.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO payments (user_id, amount, method, reference, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), ?)
	`, userID, req.Amount, req.Method, reference, strings.TrimSpace(req.IdempotencyKey), createdAt)
	if err != nil {
		return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
	}
	paymentID, err := res.LastInsertId()
	if err != nil {
		return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
	}

	if req.Method == models.PaymentMethodWallet {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET wallet_balance = wallet_balance - ?
			WHERE id = ? AND wallet_balance >= ?
		`, req.Amount, userID, req.Amount)
		if err != nil {
			return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
		}
		if affected == 0 {
			return PayResult{}, domain.ValidationError{Field: "amount", Msg: "insufficient wallet balance"}
		}
	}

	for i, trip := range trips {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (user_id, bus_id, payment_id, seats, status, booking_date, departure_time, start_location, end_location)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, userID, trip.busID, paymentID, trip.seats, models.BookingStatusConfirmed, createdAt, trip.departure, trip.start, trip.end)
		if err != nil {
			return PayResult{}, domain.PaymentError{
				Msg: "payment processing failed",
				Err: fmt.Errorf("booking %d of %d: %w", i+1, len(trips), err),
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return PayResult{}, domain.PaymentError{Msg: "payment processing failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "pay",
		fmt.Sprintf("payment_id=%d method=%s trips=%d", paymentID, req.Method, len(trips)))
	return PayResult{PaymentID: paymentID, Reference: reference, CreatedAt: createdAt}, nil
}

// TopUp adds to the wallet with a single increment statement so concurrent
// top-ups for the same user serialize at the store; there is no
// read-then-write window to lose an update in.
func (s PaymentService) TopUp(ctx context.Context, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ValidationError{Field: "amount", Msg: "top-up amount must be positive"}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET wallet_balance = wallet_balance + ? WHERE id = ?
	`, amount, userID)
	if err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}
	if affected == 0 {
		return 0, domain.NotFoundError{Resource: "user"}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (user_id, amount, method, reference, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, NULL, ?)
	`, userID, amount, models.PaymentMethodTopUp, uuid.NewString(), time.Now())
	if err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}

	var balance float64
	if err := tx.QueryRowContext(ctx, `SELECT wallet_balance FROM users WHERE id = ?`, userID).Scan(&balance); err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.PaymentError{Msg: "top-up failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "topup", fmt.Sprintf("user_id=%d amount=%s", userID, utils.FormatMoney(amount)))
	return balance, nil
}

type validTrip struct {
	busID      int64
	seats      int
	departure  time.Time
	start, end string
}

func (s PaymentService) validatePay(req PayRequest) ([]validTrip, error) {
	if req.Amount <= 0 {
		return nil, domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	if req.Amount < s.MinAmount {
		return nil, domain.ValidationError{Field: "amount", Msg: fmt.Sprintf("minimum payment is %s", utils.FormatMoney(s.MinAmount))}
	}
	if !models.ChargeMethod(req.Method) {
		return nil, domain.ValidationError{Field: "method", Msg: "method must be card or wallet"}
	}
	if len(req.Trips) == 0 {
		return nil, domain.ValidationError{Field: "trips", Msg: "at least one trip is required"}
	}

	out := make([]validTrip, 0, len(req.Trips))
	for i, t := range req.Trips {
		if t.BusID <= 0 {
			return nil, domain.ValidationError{Field: "trips", Msg: fmt.Sprintf("trip %d: busId is required", i+1)}
		}
		seats := t.Seats
		if seats == 0 {
			seats = 1
		}
		if seats < 1 {
			return nil, domain.ValidationError{Field: "trips", Msg: fmt.Sprintf("trip %d: seats must be at least 1", i+1)}
		}
		departure, err := utils.ParseDateTimeFlexible(t.DepartureTime)
		if err != nil {
			return nil, domain.ValidationError{Field: "trips", Msg: fmt.Sprintf("trip %d: invalid departure time", i+1)}
		}
		start := strings.TrimSpace(t.StartLocation)
		end := strings.TrimSpace(t.EndLocation)
		if start == "" || end == "" {
			return nil, domain.ValidationError{Field: "trips", Msg: fmt.Sprintf("trip %d: start and end locations are required", i+1)}
		}
		out = append(out, validTrip{busID: t.BusID, seats: seats, departure: departure, start: start, end: end})
	}
	return out, nil
}
