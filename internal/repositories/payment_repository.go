package repositories

import (
	"database/sql"
	"errors"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

const paymentColumns = `payment_id, user_id, amount, method, reference, COALESCE(idempotency_key, ''), created_at`

func scanPayment(scan func(dest ...any) error) (models.Payment, error) {
	var p models.Payment
	err := scan(
		&p.PaymentID,
		&p.UserID,
		&p.Amount,
		&p.Method,
		&p.Reference,
		&p.IdempotencyKey,
		&p.CreatedAt,
	)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE payment_id = ? LIMIT 1`, id)
	p, err := scanPayment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}

// GetByIdempotencyKey finds a prior payment for the same caller and key, so
// a double-submitted checkout returns the original instead of charging twice.
func (r PaymentRepository) GetByIdempotencyKey(userID int64, key string) (models.Payment, bool, error) {
	row := r.DB.QueryRow(`
		SELECT `+paymentColumns+` FROM payments
		WHERE user_id = ? AND idempotency_key = ?
		LIMIT 1
	`, userID, key)
	p, err := scanPayment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, false, nil
		}
		return models.Payment{}, false, err
	}
	return p, true, nil
}

func (r PaymentRepository) ListAll() ([]models.Payment, error) {
	return r.list(`SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`)
}

func (r PaymentRepository) ListForUser(userID int64) ([]models.Payment, error) {
	return r.list(`SELECT `+paymentColumns+` FROM payments WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r PaymentRepository) list(query string, args ...any) ([]models.Payment, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
