package entity

import (
	"time"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// Order is a purchase of one or more videogames by a user. An order is
// pending until a transaction settles it.
type Order struct {
	ID     uint64
	UserID uint64
	Total  decimal.Decimal

	VideogameIDs  IDs
	TransactionID *uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder builds an order; the total cannot be negative.
func NewOrder(userID uint64, total decimal.Decimal) (*Order, error) {
	if total.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount.WithDetailsf("order total %s is negative", total)
	}

	return &Order{UserID: userID, Total: total}, nil
}

// IsPaid reports whether a transaction has been linked to the order.
func (o *Order) IsPaid() bool {
	return o.TransactionID != nil
}
