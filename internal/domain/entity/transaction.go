package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// OperationKind is the nature of a financial transaction.
type OperationKind string

const (
	// OperationKindCharge settles an order.
	OperationKindCharge OperationKind = "charge"
)

// IsValid checks if the OperationKind is a known value.
func (k OperationKind) IsValid() bool {
	return k == OperationKindCharge
}

// Transaction is a financial movement made by a user, optionally settling an order.
type Transaction struct {
	ID            uint64
	Date          time.Time
	Total         decimal.Decimal
	PaymentMethod string
	Kind          OperationKind
	UserID        uint64
	OrderID       *uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction builds a transaction. The total must be positive, the date
// cannot be after now and a payment method is required.
func NewTransaction(date time.Time, total decimal.Decimal, paymentMethod string, kind OperationKind, userID uint64, now time.Time) (*Transaction, error) {
	t := &Transaction{Kind: kind, UserID: userID}
	if err := t.Set(date, total, paymentMethod, kind, now); err != nil {
		return nil, err
	}

	return t, nil
}

// Set replaces the mutable fields after validating them.
func (t *Transaction) Set(date time.Time, total decimal.Decimal, paymentMethod string, kind OperationKind, now time.Time) error {
	if !total.IsPositive() {
		return domainerrors.ErrInvalidAmount.WithDetailsf("transaction total %s must be positive", total)
	}
	if date.After(now) {
		return domainerrors.ErrFutureDate.WithDetails(date.Format(time.RFC3339))
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return domainerrors.ErrValidationFailed.WithDetails("payment method is required")
	}
	if !kind.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetailsf("unknown operation kind %q", kind)
	}

	t.Date = date
	t.Total = total
	t.PaymentMethod = paymentMethod
	t.Kind = kind

	return nil
}
