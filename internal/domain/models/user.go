package models

import "time"

type User struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstname"`
	LastName      string    `json:"lastname"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	WalletBalance float64   `json:"wallet_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// PublicUser is the wire shape returned by auth and profile endpoints.
type PublicUser struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"firstname"`
	LastName      string  `json:"lastname"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	WalletBalance float64 `json:"wallet_balance"`
	MemberSince   string  `json:"member_since"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		WalletBalance: u.WalletBalance,
		MemberSince:   u.CreatedAt.Format("2006-01-02"),
	}
}
