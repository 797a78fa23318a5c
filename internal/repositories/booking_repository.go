package repositories

import (
	"database/sql"

	"monametro/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `b.booking_id, b.user_id, b.bus_id, b.payment_id, b.seats, b.status,
	b.booking_date, b.departure_time, b.start_location, b.end_location`

func scanBooking(rows *sql.Rows) (models.Booking, error) {
	var b models.Booking
	err := rows.Scan(
		&b.BookingID,
		&b.UserID,
		&b.BusID,
		&b.PaymentID,
		&b.Seats,
		&b.Status,
		&b.BookingDate,
		&b.DepartureTime,
		&b.StartLocation,
		&b.EndLocation,
	)
	return b, err
}

// ListUpcomingAll is the admin view: every passenger's future and past
// bookings joined with identity, soonest departure first.
func (r BookingRepository) ListUpcomingAll(limit int) ([]models.BookingWithUser, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`, u.firstname, u.lastname
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		ORDER BY b.departure_time ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingWithUser{}
	for rows.Next() {
		var bw models.BookingWithUser
		if err := rows.Scan(
			&bw.BookingID, &bw.UserID, &bw.BusID, &bw.PaymentID, &bw.Seats, &bw.Status,
			&bw.BookingDate, &bw.DepartureTime, &bw.StartLocation, &bw.EndLocation,
			&bw.FirstName, &bw.LastName,
		); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

// ListUpcomingForUser returns the caller's own not-yet-departed trips.
func (r BookingRepository) ListUpcomingForUser(userID int64, limit int) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.user_id = ? AND b.departure_time > NOW()
		ORDER BY b.departure_time ASC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListRecentAll(limit int) ([]models.BookingWithUser, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`, u.firstname, u.lastname
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		ORDER BY b.booking_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingWithUser{}
	for rows.Next() {
		var bw models.BookingWithUser
		if err := rows.Scan(
			&bw.BookingID, &bw.UserID, &bw.BusID, &bw.PaymentID, &bw.Seats, &bw.Status,
			&bw.BookingDate, &bw.DepartureTime, &bw.StartLocation, &bw.EndLocation,
			&bw.FirstName, &bw.LastName,
		); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListRecentForUser(userID int64, limit int) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.user_id = ?
		ORDER BY b.booking_date DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByPaymentID returns the bookings funded by one payment.
func (r BookingRepository) ListByPaymentID(paymentID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.payment_id = ?
		ORDER BY b.booking_id ASC
	`, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
