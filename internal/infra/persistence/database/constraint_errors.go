package database

import (
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/errors"

	"gorm.io/gorm"
)

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// findError maps a lookup failure onto notFound or a database error.
func findError(err error, notFound *domainerrors.BaseError, details string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound.WithDetails(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// writeError maps a write failure. Unique violations on an email column
// become ErrDuplicateEmail.
func writeError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrDuplicateEmail.WithDetails(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// accountWriteError maps a failed account insert. Email and lowercased
// username are both unique and the translated error does not say which one
// collided.
func accountWriteError(err error, user *entity.User) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrDuplicateAccount.WithDetailsf("%s / %s", user.Username, user.Email)
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create user "+user.Email)
}

// requireAffected turns an update that matched no row into notFound.
func requireAffected(result *gorm.DB, notFound *domainerrors.BaseError, details string) error {
	if result.Error != nil {
		return writeError(result.Error, details)
	}
	if result.RowsAffected == 0 {
		return notFound.WithDetails(details)
	}

	return nil
}
