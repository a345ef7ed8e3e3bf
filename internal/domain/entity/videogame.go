package entity

import (
	"time"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// Videogame is a sellable catalogue item.
type Videogame struct {
	ID         uint64
	Price      decimal.Decimal
	CategoryID *uint64

	OwnerIDs     IDs // users that purchased it
	PublisherIDs IDs // vendors that published it
	OrderIDs     IDs
	ChallengeIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVideogame builds a videogame; the price must be strictly positive.
func NewVideogame(price decimal.Decimal, categoryID *uint64) (*Videogame, error) {
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}

	return &Videogame{Price: price, CategoryID: categoryID}, nil
}

// ValidatePrice rejects zero and negative prices.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return domainerrors.ErrInvalidPrice.WithDetails(price.String())
	}

	return nil
}
