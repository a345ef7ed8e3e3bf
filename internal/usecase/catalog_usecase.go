package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CreateCategoryInput defines a new category.
type CreateCategoryInput struct {
	Name        string `validate:"required"`
	Description string
}

// PublishVideogameInput defines a videogame published by a vendor.
type PublishVideogameInput struct {
	VendorID   uint64 `validate:"required"`
	CategoryID uint64 `validate:"required"`
	Price      decimal.Decimal
}

// PriceFilterInput selects videogames within an inclusive price range,
// optionally restricted to a category.
type PriceFilterInput struct {
	Min        decimal.Decimal
	Max        decimal.Decimal
	CategoryID *uint64
}

// CreateChallengeInput defines a challenge over one or more videogames.
type CreateChallengeInput struct {
	Name         string `validate:"required"`
	Description  string `validate:"required"`
	VideogameIDs []uint64
}

// CatalogUsecase defines the catalogue operations.
type CatalogUsecase interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (uint64, error)

	// PublishVideogame creates a videogame in the category and adds it to
	// the vendor's published catalogue. It returns the videogame id.
	PublishVideogame(ctx context.Context, input PublishVideogameInput) (uint64, error)

	// DeleteVideogame removes a videogame priced up to the deletion cap.
	DeleteVideogame(ctx context.Context, videogameID uint64) error

	// FilterVideogamesByPrice returns the matching videogames sorted by
	// ascending price.
	FilterVideogamesByPrice(ctx context.Context, input PriceFilterInput) ([]*entity.Videogame, error)

	// ListVideogamesByCategory returns the videogames of the named category.
	// Blank or unknown names yield an empty slice.
	ListVideogamesByCategory(ctx context.Context, categoryName string) ([]*entity.Videogame, error)

	// CreateChallenge creates a challenge linked to every videogame and
	// returns its id.
	CreateChallenge(ctx context.Context, input CreateChallengeInput) (uint64, error)

	AttachBadgeToChallenge(ctx context.Context, challengeID, badgeID uint64) error
}
