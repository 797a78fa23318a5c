package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"monametro/internal/domain"
	"monametro/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentService(t *testing.T) (PaymentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := PaymentService{
		DB:        db,
		Payments:  repositories.PaymentRepository{DB: db},
		MinAmount: 300,
	}
	return svc, mock
}

func cardRequest(trips ...TripRequest) PayRequest {
	return PayRequest{
		Amount: 300 * float64(len(trips)),
		Method: "card",
		Trips:  trips,
	}
}

func trip(busID int64) TripRequest {
	return TripRequest{
		BusID:         busID,
		Seats:         1,
		DepartureTime: "2026-09-01 07:00:00",
		StartLocation: "Mona Campus",
		EndLocation:   "Half Way Tree",
	}
}

func TestPayCommitsPaymentAndAllBookings(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	result, err := svc.Pay(context.Background(), 42, cardRequest(trip(1), trip(2)))
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.PaymentID)
	assert.NotEmpty(t, result.Reference)
	assert.False(t, result.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRollsBackWhenBookingInsertFails(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := svc.Pay(context.Background(), 42, cardRequest(trip(1), trip(2)))
	require.Error(t, err)
	assert.True(t, domain.IsPayment(err), "expected payment error, got %v", err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBelowMinimumRejectedBeforeAnySQL(t *testing.T) {
	svc, mock := newPaymentService(t)

	req := cardRequest(trip(1))
	req.Amount = 299

	_, err := svc.Pay(context.Background(), 42, req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)

	// Nothing may touch the store for a rejected amount.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRejectsUnknownMethodAndEmptyTrips(t *testing.T) {
	svc, _ := newPaymentService(t)

	req := cardRequest(trip(1))
	req.Method = "cheque"
	_, err := svc.Pay(context.Background(), 42, req)
	assert.True(t, domain.IsValidation(err))

	req = PayRequest{Amount: 300, Method: "card"}
	_, err = svc.Pay(context.Background(), 42, req)
	assert.True(t, domain.IsValidation(err))
}

func TestPayWalletDebitsInsideTransaction(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance - \?`).
		WithArgs(300.0, int64(42), 300.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	req := cardRequest(trip(1))
	req.Method = "wallet"

	result, err := svc.Pay(context.Background(), 42, req)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.PaymentID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayWalletInsufficientFundsRollsBack(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance - \?`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	req := cardRequest(trip(1))
	req.Method = "wallet"

	_, err := svc.Pay(context.Background(), 42, req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "insufficient funds should read as validation, got %v", err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPayIdempotentReplayReturnsOriginalPayment(t *testing.T) {
	svc, mock := newPaymentService(t)

	createdAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM payments").
		WithArgs(int64(42), "chk-123").
		WillReturnRows(sqlmock.NewRows([]string{
			"payment_id", "user_id", "amount", "method", "reference", "idempotency_key", "created_at",
		}).AddRow(5, 42, 300.0, "card", "ref-abc", "chk-123", createdAt))

	req := cardRequest(trip(1))
	req.IdempotencyKey = "chk-123"

	result, err := svc.Pay(context.Background(), 42, req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.PaymentID)
	assert.Equal(t, "ref-abc", result.Reference)
	assert.Equal(t, createdAt, result.CreatedAt)

	// No transaction, no inserts: the original payment answers the retry.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTopUpUsesSingleIncrementStatement(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \? WHERE id = \?`).
		WithArgs(150.0, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT wallet_balance FROM users").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"wallet_balance"}).AddRow(450.0))
	mock.ExpectCommit()

	balance, err := svc.TopUp(context.Background(), 42, 150)
	require.NoError(t, err)
	assert.Equal(t, 450.0, balance)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTopUpRejectsNonPositiveAmount(t *testing.T) {
	svc, mock := newPaymentService(t)

	for _, amount := range []float64{0, -25} {
		_, err := svc.TopUp(context.Background(), 42, amount)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTopUpUnknownUser(t *testing.T) {
	svc, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET wallet_balance = wallet_balance \+ \?`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.TopUp(context.Background(), 999, 50)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
