package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// Challenge is a goal attached to videogames that can award badges.
type Challenge struct {
	ID          uint64
	Name        string
	Description string

	VideogameIDs IDs
	BadgeIDs     IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewChallenge builds a challenge; name and description are required.
func NewChallenge(name, description string) (*Challenge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("challenge name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("challenge description is required")
	}

	return &Challenge{Name: name, Description: description}, nil
}
