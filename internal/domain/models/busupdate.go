package models

import "time"

// BusUpdate is a short-lived driver announcement. Append-only.
type BusUpdate struct {
	UpdateID   int64     `json:"updateId"`
	BusID      int64     `json:"busId"`
	DriverID   int64     `json:"driverId"`
	DriverName string    `json:"driverName,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
