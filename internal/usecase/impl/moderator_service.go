package impl

import (
	"context"
	"log/slog"
	"regexp"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"
	"marketplace/internal/usecase"
)

// resetTagPattern matches a reset tag left on a moderator email by an earlier reset.
var resetTagPattern = regexp.MustCompile(`^\[RESET_\d{8}\]_`)

// moderatorService implements the ModeratorUsecase interface.
type moderatorService struct {
	orchestrator
}

// NewModeratorService is the constructor for moderatorService.
func NewModeratorService(params ServiceParams) usecase.ModeratorUsecase {
	return &moderatorService{orchestrator: newOrchestrator(params)}
}

func (srv *moderatorService) CreateModerator(ctx context.Context, input usecase.CreateModeratorInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "CreateModerator", slog.String("email", input.Email))

	id, err := srv.createModerator(ctx, input)

	return id, srv.finish(logger, "CreateModerator", err)
}

func (srv *moderatorService) createModerator(ctx context.Context, input usecase.CreateModeratorInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	if err := checkPasswordLength(input.Password, srv.rules.ModeratorPasswordMinLength); err != nil {
		return 0, err
	}

	moderator, err := entity.NewModerator(input.Email)
	if err != nil {
		return 0, err
	}
	if moderator.PasswordHash, err = srv.hasher.Hash(input.Password); err != nil {
		return 0, errors.Wrap(err, "failed to hash password")
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.ModeratorRepo().FindByEmail(ctx, moderator.Email)
		switch {
		case err == nil:
			return domainerrors.ErrDuplicateEmail.WithDetails(moderator.Email)
		case !errors.Is(err, domainerrors.ErrModeratorNotFound):
			return err
		}

		return repos.ModeratorRepo().Create(ctx, moderator)
	})
	if err != nil {
		return 0, err
	}

	return moderator.ID, nil
}

func (srv *moderatorService) LoginModerator(ctx context.Context, input usecase.LoginInput) (*entity.Moderator, error) {
	ctx, logger := srv.start(ctx, "LoginModerator")

	moderator, err := srv.loginModerator(ctx, input)

	return moderator, srv.finish(logger, "LoginModerator", err)
}

func (srv *moderatorService) loginModerator(ctx context.Context, input usecase.LoginInput) (*entity.Moderator, error) {
	if err := srv.check(input); err != nil {
		return nil, err
	}

	moderator, err := srv.uow.Repositories().ModeratorRepo().FindByEmail(ctx, input.Email)
	if errors.Is(err, domainerrors.ErrModeratorNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !srv.hasher.Check(input.Password, moderator.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return moderator, nil
}

func (srv *moderatorService) ResetModeratorPassword(ctx context.Context, input usecase.ResetModeratorPasswordInput) error {
	ctx, logger := srv.start(ctx, "ResetModeratorPassword", slog.Uint64("moderatorID", input.ModeratorID))

	err := srv.resetModeratorPassword(ctx, input)

	return srv.finish(logger, "ResetModeratorPassword", err)
}

func (srv *moderatorService) resetModeratorPassword(ctx context.Context, input usecase.ResetModeratorPasswordInput) error {
	if input.AdminCode != srv.rules.AdminResetCode {
		return domainerrors.ErrInvalidAdminCode
	}
	if err := srv.check(input); err != nil {
		return err
	}
	if err := checkPasswordLength(input.NewPassword, srv.rules.ModeratorPasswordMinLength); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}
	tag := "[RESET_" + srv.now().Format("20060102") + "]_"

	return srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		moderator, err := repos.ModeratorRepo().FindByID(ctx, input.ModeratorID)
		if err != nil {
			return err
		}

		moderator.Email = tag + resetTagPattern.ReplaceAllString(moderator.Email, "")
		moderator.PasswordHash = hash

		return repos.ModeratorRepo().Update(ctx, moderator)
	})
}
