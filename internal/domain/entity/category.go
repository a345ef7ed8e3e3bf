package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// Category groups videogames.
type Category struct {
	ID          uint64
	Name        string
	Description string

	VideogameIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory builds a category; the name is required.
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("category name is required")
	}

	return &Category{Name: name, Description: description}, nil
}
