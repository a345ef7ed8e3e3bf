package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	orchestrator
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params ServiceParams) usecase.AccountUsecase {
	return &accountService{orchestrator: newOrchestrator(params)}
}

// RegisterUser creates a plain user account.
func (srv *accountService) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "RegisterUser", slog.String("username", input.Username))

	id, err := srv.register(ctx, input, entity.AccountKindUser)

	return id, srv.finish(logger, "RegisterUser", err)
}

// RegisterVendor creates a vendor account.
func (srv *accountService) RegisterVendor(ctx context.Context, input usecase.RegisterUserInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "RegisterVendor", slog.String("username", input.Username))

	id, err := srv.register(ctx, input, entity.AccountKindVendor)

	return id, srv.finish(logger, "RegisterVendor", err)
}

func (srv *accountService) register(ctx context.Context, input usecase.RegisterUserInput, kind entity.AccountKind) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	if err := checkPasswordLength(input.Password, srv.rules.UserPasswordMinLength); err != nil {
		return 0, err
	}

	user, err := entity.NewUser(input.Username, input.Email, input.Phone, input.Nickname)
	if err != nil {
		return 0, err
	}
	user.Kind = kind

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return 0, errors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hash

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := ensureAccountAvailable(ctx, repos.UserRepo(), user); err != nil {
			return err
		}

		if kind == entity.AccountKindVendor {
			vendor := &entity.Vendor{User: *user}
			if err := repos.VendorRepo().Create(ctx, vendor); err != nil {
				return err
			}
			user.ID = vendor.ID

			return nil
		}

		return repos.UserRepo().Create(ctx, user)
	})
	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// ensureAccountAvailable rejects emails and usernames already in use, ignoring case.
func ensureAccountAvailable(ctx context.Context, users repository.UserRepository, user *entity.User) error {
	_, err := users.FindByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return domainerrors.ErrDuplicateEmail.WithDetails(user.Email)
	case !errors.Is(err, domainerrors.ErrUserNotFound):
		return err
	}

	_, err = users.FindByUsername(ctx, user.Username)
	switch {
	case err == nil:
		return domainerrors.ErrDuplicateUsername.WithDetails(user.Username)
	case !errors.Is(err, domainerrors.ErrUserNotFound):
		return err
	}

	return nil
}

// Login checks the credentials against the stored password hash.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	ctx, logger := srv.start(ctx, "Login")

	user, err := srv.login(ctx, input)

	return user, srv.finish(logger, "Login", err)
}

func (srv *accountService) login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	if err := srv.check(input); err != nil {
		return nil, err
	}

	user, err := srv.uow.Repositories().UserRepo().FindByEmail(ctx, input.Email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (srv *accountService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	ctx, logger := srv.start(ctx, "ChangePassword", slog.Uint64("userID", input.UserID))

	err := srv.changePassword(ctx, input)

	return srv.finish(logger, "ChangePassword", err)
}

func (srv *accountService) changePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	if err := srv.check(input); err != nil {
		return err
	}
	if err := checkPasswordLength(input.NewPassword, srv.rules.UserPasswordMinLength); err != nil {
		return err
	}
	if input.NewPassword == input.CurrentPassword {
		return domainerrors.ErrPasswordUnchanged
	}

	return srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash

		return repos.UserRepo().Update(ctx, user)
	})
}

// DeleteUser removes an account. Administrator and support accounts are protected.
func (srv *accountService) DeleteUser(ctx context.Context, userID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteUser", slog.Uint64("userID", userID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := srv.checkDeletable(user); err != nil {
			return err
		}

		return repos.UserRepo().Delete(ctx, user)
	})

	return srv.finish(logger, "DeleteUser", err)
}

// DeleteVendor removes a vendor under the same protections as DeleteUser.
func (srv *accountService) DeleteVendor(ctx context.Context, vendorID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteVendor", slog.Uint64("vendorID", vendorID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		vendor, err := repos.VendorRepo().FindByID(ctx, vendorID)
		if err != nil {
			return err
		}
		if err := srv.checkDeletable(&vendor.User); err != nil {
			return err
		}

		return repos.VendorRepo().Delete(ctx, vendor)
	})

	return srv.finish(logger, "DeleteVendor", err)
}

// checkDeletable protects administrator accounts and, for vendors, support
// accounts, whichever delete operation reached them.
func (srv *accountService) checkDeletable(user *entity.User) error {
	if strings.HasSuffix(user.Email, strings.ToLower(srv.rules.AdminEmailSuffix)) {
		return domainerrors.ErrAdminAccount.WithDetails(user.Email)
	}
	if user.IsVendor() && strings.Contains(user.Email, strings.ToLower(srv.rules.SupportAccountMarker)) {
		return domainerrors.ErrSupportAccount.WithDetails(user.Email)
	}

	return nil
}

// SuspendVendor prefixes the vendor email with the suspension marker and the
// reason, and replaces the password with a random one nobody knows.
func (srv *accountService) SuspendVendor(ctx context.Context, input usecase.SuspendVendorInput) error {
	ctx, logger := srv.start(ctx, "SuspendVendor", slog.Uint64("vendorID", input.VendorID))

	err := srv.suspendVendor(ctx, input)

	return srv.finish(logger, "SuspendVendor", err)
}

func (srv *accountService) suspendVendor(ctx context.Context, input usecase.SuspendVendorInput) error {
	if err := srv.check(input); err != nil {
		return err
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return domainerrors.ErrValidationFailed.WithDetails("suspension reason is required")
	}

	hash, err := srv.hasher.Hash(uuid.NewString())
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	return srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		vendor, err := repos.VendorRepo().FindByID(ctx, input.VendorID)
		if err != nil {
			return err
		}

		vendor.Email = srv.rules.SuspensionMarker + reason + "_" + vendor.Email
		vendor.PasswordHash = hash

		return repos.VendorRepo().Update(ctx, vendor)
	})
}

// AssignBadge creates a badge and gives it to the user.
func (srv *accountService) AssignBadge(ctx context.Context, input usecase.AssignBadgeInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "AssignBadge", slog.Uint64("userID", input.UserID), slog.String("kind", input.Kind))

	id, err := srv.assignBadge(ctx, input)

	return id, srv.finish(logger, "AssignBadge", err)
}

func (srv *accountService) assignBadge(ctx context.Context, input usecase.AssignBadgeInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	kind, err := entity.ParseBadgeKind(input.Kind)
	if err != nil {
		return 0, err
	}
	badge, err := entity.NewBadge(kind, input.ImagePath)
	if err != nil {
		return 0, err
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if err := repos.BadgeRepo().Create(ctx, badge); err != nil {
			return err
		}

		entity.LinkUserBadge(user, badge)

		return repos.BadgeRepo().Update(ctx, badge)
	})
	if err != nil {
		return 0, err
	}

	return badge.ID, nil
}

// checkPasswordLength counts characters, not bytes.
func checkPasswordLength(password string, minLength int) error {
	if utf8.RuneCountInString(password) < minLength {
		return domainerrors.ErrPasswordTooShort.WithDetailsf("at least %d characters are required", minLength)
	}

	return nil
}
