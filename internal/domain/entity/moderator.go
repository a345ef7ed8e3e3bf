package entity

import (
	"time"
)

// Moderator handles reports and support tickets.
type Moderator struct {
	ID           uint64
	Email        string
	PasswordHash string

	ReportIDs        IDs
	SupportTicketIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewModerator builds a moderator with a normalized email.
func NewModerator(email string) (*Moderator, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &Moderator{Email: email}, nil
}
