package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
)

type Booking struct {
	BookingID     int64     `json:"bookingId"`
	UserID        int64     `json:"userId"`
	BusID         int64     `json:"busId"`
	PaymentID     int64     `json:"paymentId"`
	Seats         int       `json:"seats"`
	Status        string    `json:"status"`
	BookingDate   time.Time `json:"bookingDate"`
	DepartureTime time.Time `json:"departureTime"`
	StartLocation string    `json:"startLocation"`
	EndLocation   string    `json:"endLocation"`
}

// BookingWithUser augments a booking with passenger identity for admin
// listings.
type BookingWithUser struct {
	Booking
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}
