package models

import "time"

const (
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"
	PaymentMethodTopUp  = "topup"
)

// ChargeMethod reports whether method is accepted for trip payments.
// Top-ups are recorded with their own method and never pass through Pay.
func ChargeMethod(method string) bool {
	return method == PaymentMethodCard || method == PaymentMethodWallet
}

type Payment struct {
	PaymentID      int64     `json:"paymentId"`
	UserID         int64     `json:"userId"`
	Amount         float64   `json:"amount"`
	Method         string    `json:"method"`
	Reference      string    `json:"reference"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
