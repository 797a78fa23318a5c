package models

import "time"

type Feedback struct {
	FeedbackID int64     `json:"feedbackId"`
	UserID     int64     `json:"userId"`
	Message    string    `json:"message"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedbackWithUser carries submitter identity for the admin listing.
type FeedbackWithUser struct {
	Feedback
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}
