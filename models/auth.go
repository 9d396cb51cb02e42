package models

import (
	"time"
)

type User struct {
	ID                 string    `json:"id"`
	FirstName          string    `json:"firstname"`
	LastName           string    `json:"lastname"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	SubscriptionTier   string    `json:"subscription_tier"`
	SubscriptionStatus string    `json:"subscription_status"`
	Token              string    `json:"token,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
