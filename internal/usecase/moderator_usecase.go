package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// CreateModeratorInput defines the data required to create a moderator.
type CreateModeratorInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ResetModeratorPasswordInput is a privileged password reset.
type ResetModeratorPasswordInput struct {
	ModeratorID uint64 `validate:"required"`
	NewPassword string `validate:"required"`
	AdminCode   string
}

// ModeratorUsecase defines the moderator account operations.
type ModeratorUsecase interface {
	CreateModerator(ctx context.Context, input CreateModeratorInput) (uint64, error)
	LoginModerator(ctx context.Context, input LoginInput) (*entity.Moderator, error)

	// ResetModeratorPassword requires the administrative code and tags the
	// moderator email with the reset date.
	ResetModeratorPassword(ctx context.Context, input ResetModeratorPasswordInput) error
}
