// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
//
// Every repository returns the matching NotFound error from the domain
// errors package when an id does not resolve. Create assigns the identifier
// and timestamps back onto the entity. Update persists the entity together
// with its side of every relationship it owns.
package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

// Repository is the per-entity contract shared by every port.
type Repository[T any] interface {
	// FindByID retrieves a single entity by its identifier.
	FindByID(ctx context.Context, id uint64) (*T, error)

	// FindAll retrieves every entity ordered by identifier.
	FindAll(ctx context.Context) ([]*T, error)

	// Create persists a new entity.
	Create(ctx context.Context, e *T) error

	// Update modifies an existing entity.
	Update(ctx context.Context, e *T) error

	// Delete removes the entity and every link that references it.
	Delete(ctx context.Context, e *T) error
}

// UserRepository persists accounts. Vendors are users too and are returned
// by its reads with Kind set accordingly.
type UserRepository interface {
	Repository[entity.User]

	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername matches the username case-insensitively.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// VendorRepository persists vendor accounts only.
type VendorRepository interface {
	Repository[entity.Vendor]
}

// ModeratorRepository persists moderators.
type ModeratorRepository interface {
	Repository[entity.Moderator]

	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Moderator, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Repository[entity.Category]

	// FindByName matches the name case-insensitively.
	FindByName(ctx context.Context, name string) (*entity.Category, error)
}

// VideogameRepository persists videogames.
type VideogameRepository interface {
	Repository[entity.Videogame]

	// FindByCategoryName returns the videogames of the named category. Blank
	// or unknown names yield an empty slice.
	FindByCategoryName(ctx context.Context, name string) ([]*entity.Videogame, error)

	// FindByCategoryID returns the videogames of a category. Unknown ids
	// yield an empty slice.
	FindByCategoryID(ctx context.Context, categoryID uint64) ([]*entity.Videogame, error)
}

// OrderRepository persists orders.
type OrderRepository interface {
	Repository[entity.Order]
}

// TransactionRepository persists financial transactions.
type TransactionRepository interface {
	Repository[entity.Transaction]

	// FindByPaymentMethod matches the payment method case-insensitively.
	// Blank or unknown methods yield an empty slice.
	FindByPaymentMethod(ctx context.Context, method string) ([]*entity.Transaction, error)
}

// ReportRepository persists reports.
type ReportRepository interface {
	Repository[entity.Report]

	// FindByState returns the reports in the given state.
	FindByState(ctx context.Context, state entity.ReportState) ([]*entity.Report, error)
}

// SupportTicketRepository persists support tickets.
type SupportTicketRepository interface {
	Repository[entity.SupportTicket]

	FindByState(ctx context.Context, state entity.SupportTicketState) ([]*entity.SupportTicket, error)
}

// BadgeRepository persists badges.
type BadgeRepository interface {
	Repository[entity.Badge]
}

// ChallengeRepository persists challenges.
type ChallengeRepository interface {
	Repository[entity.Challenge]
}
