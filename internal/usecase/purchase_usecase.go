package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// PurchaseInput selects the videogames bought by a user.
type PurchaseInput struct {
	UserID       uint64 `validate:"required"`
	VideogameIDs []uint64
}

// ConfirmPurchaseInput pays a pending order.
type ConfirmPurchaseInput struct {
	OrderID       uint64 `validate:"required"`
	PaymentMethod string `validate:"required"`
}

// PurchaseUsecase defines the order and payment operations.
type PurchaseUsecase interface {
	// PurchaseVideogames creates an order for the videogames, totals their
	// prices and adds them to the user's owned collection. It returns the
	// order id.
	PurchaseVideogames(ctx context.Context, input PurchaseInput) (uint64, error)

	// ConfirmPurchase creates a charge transaction dated now for the order
	// total and links it to the order. It returns the transaction id.
	ConfirmPurchase(ctx context.Context, input ConfirmPurchaseInput) (uint64, error)

	// DeleteTransaction removes a transaction whose total is within the deletion cap.
	DeleteTransaction(ctx context.Context, transactionID uint64) error

	ListTransactionsByPaymentMethod(ctx context.Context, method string) ([]*entity.Transaction, error)
}
