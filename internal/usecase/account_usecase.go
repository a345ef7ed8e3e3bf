// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks. Every operation either
// fully succeeds or leaves the store untouched, and failures carry a
// domain error Kind (NotFound, Validation, Conflict, Unauthorized).
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a user or vendor.
type RegisterUserInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string
	Nickname string
	Password string `validate:"required"`
}

// LoginInput defines the credentials of a user or moderator.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// ChangePasswordInput replaces the password of a user.
type ChangePasswordInput struct {
	UserID          uint64 `validate:"required"`
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required"`
}

// SuspendVendorInput locks a vendor account out.
type SuspendVendorInput struct {
	VendorID uint64 `validate:"required"`
	Reason   string `validate:"required"`
}

// AssignBadgeInput awards a new badge to a user.
type AssignBadgeInput struct {
	UserID    uint64 `validate:"required"`
	Kind      string `validate:"required"`
	ImagePath string `validate:"required"`
}

// AccountUsecase defines the account related operations.
type AccountUsecase interface {
	// RegisterUser creates a user after checking that neither the email nor
	// the username is taken, ignoring case. It returns the new user id.
	RegisterUser(ctx context.Context, input RegisterUserInput) (uint64, error)

	// RegisterVendor creates a vendor with the same rules as RegisterUser.
	RegisterVendor(ctx context.Context, input RegisterUserInput) (uint64, error)

	// Login returns the account matching the credentials.
	Login(ctx context.Context, input LoginInput) (*entity.User, error)

	ChangePassword(ctx context.Context, input ChangePasswordInput) error

	// DeleteUser removes an account unless it is an administrator account.
	DeleteUser(ctx context.Context, userID uint64) error

	// DeleteVendor removes a vendor unless it is a support account.
	DeleteVendor(ctx context.Context, vendorID uint64) error

	// SuspendVendor marks the vendor email and replaces its password with
	// an unusable one.
	SuspendVendor(ctx context.Context, input SuspendVendorInput) error

	// AssignBadge creates a badge owned by the user and returns its id.
	AssignBadge(ctx context.Context, input AssignBadgeInput) (uint64, error)
}
