package entity

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        *string   `json:"email,omitempty"`
	ResetToken   *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
