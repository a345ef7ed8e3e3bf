package errors

import (
	"testing"

	"marketplace/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesCode(t *testing.T) {
	err := ErrUserNotFound.WithDetailsf("user %d", 7)

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrVendorNotFound))
	assert.Equal(t, "user not found: user 7", err.Error())

	wrapped := err.WrapMessage("loading reporter")
	assert.True(t, errors.Is(wrapped, ErrUserNotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not found", ErrOrderNotFound, KindNotFound},
		{"validation", ErrSelfReport.WithDetails("ana"), KindValidation},
		{"conflict wrapped", errors.Wrap(ErrReportSolved, "delete"), KindConflict},
		{"unauthorized", ErrInvalidAdminCode, KindUnauthorized},
		{"database", NewDatabaseExecuteError(errors.New("locked"), "insert"), KindInternal},
		{"foreign", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Nil(t, Describe(nil))

	info := Describe(errors.Wrap(ErrDuplicateEmail.WithDetails("ana@x.com"), "register"))
	assert.Equal(t, &ErrorInfo{
		Kind:    KindValidation,
		Code:    "DUPLICATE_EMAIL",
		Message: "email is already registered",
		Details: "ana@x.com",
	}, info)

	info = Describe(errors.New("driver exploded"))
	assert.Equal(t, KindInternal, info.Kind)
	assert.Equal(t, "INTERNAL_ERROR", info.Code)
	assert.Empty(t, info.Details)
}
