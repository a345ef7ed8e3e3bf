package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_RegisterUser_Success(t *testing.T) {
	svc := createTestServices(t)

	id := svc.registerUser(t, "ana")

	user := svc.user(t, id)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.False(t, user.IsVendor())
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, svc.accounts.hasher.Check("secret1", user.PasswordHash))
}

func TestAccountService_RegisterUser_DuplicateEmail(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()

	_, err := svc.accounts.RegisterUser(ctx, usecase.RegisterUserInput{
		Username: "ana", Email: "ana@x.com", Phone: "555", Nickname: "an", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.accounts.RegisterUser(ctx, usecase.RegisterUserInput{
		Username: "bob", Email: "ANA@x.com", Phone: "555", Nickname: "bb", Password: "secret2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))

	users, err := svc.repos().UserRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAccountService_RegisterUser_DuplicateUsername(t *testing.T) {
	svc := createTestServices(t)
	svc.registerUser(t, "ana")

	_, err := svc.accounts.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Username: "ANA", Email: "other@x.com", Password: "secret1",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateUsername))
}

func TestAccountService_RegisterUser_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterUserInput
		want  error
	}{
		{
			name:  "short password",
			input: usecase.RegisterUserInput{Username: "ana", Email: "ana@x.com", Password: "12345"},
			want:  domainerrors.ErrPasswordTooShort,
		},
		{
			name:  "missing username",
			input: usecase.RegisterUserInput{Email: "ana@x.com", Password: "secret1"},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "malformed email",
			input: usecase.RegisterUserInput{Username: "ana", Email: "ana", Password: "secret1"},
			want:  domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestServices(t)

			_, err := svc.accounts.RegisterUser(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAccountService_RegisterVendor(t *testing.T) {
	svc := createTestServices(t)

	id := svc.registerVendor(t, "shop")

	vendor, err := svc.repos().VendorRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, vendor.IsVendor())
	assert.True(t, svc.user(t, id).IsVendor())
}

func TestAccountService_Login(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()
	id := svc.registerUser(t, "ana")

	user, err := svc.accounts.Login(ctx, usecase.LoginInput{Email: "ANA@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = svc.accounts.Login(ctx, usecase.LoginInput{Email: "ana@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = svc.accounts.Login(ctx, usecase.LoginInput{Email: "nobody@x.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
}

func TestAccountService_ChangePassword(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()
	id := svc.registerUser(t, "ana")

	err := svc.accounts.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID: id, CurrentPassword: "secret1", NewPassword: "secret1",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordUnchanged))

	err = svc.accounts.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID: id, CurrentPassword: "wrong", NewPassword: "another1",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = svc.accounts.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID: id, CurrentPassword: "secret1", NewPassword: "another1",
	})
	require.NoError(t, err)
	assert.True(t, svc.accounts.hasher.Check("another1", svc.user(t, id).PasswordHash))
}

func TestAccountService_DeleteUser(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()

	adminID, err := svc.accounts.RegisterUser(ctx, usecase.RegisterUserInput{
		Username: "root", Email: "root@Admin.com", Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.accounts.DeleteUser(ctx, adminID)
	assert.True(t, errors.Is(err, domainerrors.ErrAdminAccount))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	id := svc.registerUser(t, "ana")
	require.NoError(t, svc.accounts.DeleteUser(ctx, id))

	_, err = svc.repos().UserRepo().FindByID(ctx, id)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	err = svc.accounts.DeleteUser(ctx, id)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestAccountService_DeleteVendor_SupportAccount(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()

	id, err := svc.accounts.RegisterVendor(ctx, usecase.RegisterUserInput{
		Username: "help", Email: "soporte@shop.com", Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.accounts.DeleteVendor(ctx, id)
	assert.True(t, errors.Is(err, domainerrors.ErrSupportAccount))

	err = svc.accounts.DeleteUser(ctx, id)
	assert.True(t, errors.Is(err, domainerrors.ErrSupportAccount))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	vendor, err := svc.repos().VendorRepo().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "soporte@shop.com", vendor.Email)

	other := svc.registerVendor(t, "shop")
	require.NoError(t, svc.accounts.DeleteVendor(ctx, other))
}

func TestAccountService_SuspendVendor(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()
	id := svc.registerVendor(t, "shop")

	err := svc.accounts.SuspendVendor(ctx, usecase.SuspendVendorInput{VendorID: id, Reason: "fraud"})
	require.NoError(t, err)

	vendor := svc.user(t, id)
	assert.Equal(t, "SUSPENDIDO_fraud_shop@shop.com", vendor.Email)
	assert.True(t, strings.HasPrefix(vendor.Email, svc.accounts.rules.SuspensionMarker))
	assert.False(t, svc.accounts.hasher.Check("secret1", vendor.PasswordHash))
}

func TestAccountService_AssignBadge(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()
	userID := svc.registerUser(t, "ana")

	badgeID, err := svc.accounts.AssignBadge(ctx, usecase.AssignBadgeInput{
		UserID: userID, Kind: "Profile", ImagePath: "/img/star.png",
	})
	require.NoError(t, err)

	badge, err := svc.repos().BadgeRepo().FindByID(ctx, badgeID)
	require.NoError(t, err)
	require.NotNil(t, badge.UserID)
	assert.Equal(t, userID, *badge.UserID)
	assert.Equal(t, []uint64{badgeID}, []uint64(svc.user(t, userID).BadgeIDs))
}

func TestAccountService_AssignBadge_BlankImagePath(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()
	userID := svc.registerUser(t, "ana")

	_, err := svc.accounts.AssignBadge(ctx, usecase.AssignBadgeInput{UserID: userID, Kind: "Profile", ImagePath: ""})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))

	_, err = svc.accounts.AssignBadge(ctx, usecase.AssignBadgeInput{UserID: userID, Kind: "Profile", ImagePath: "   "})
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))

	assert.Empty(t, svc.user(t, userID).BadgeIDs)
	badges, err := svc.repos().BadgeRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, badges)
}

func TestAccountService_AssignBadge_UnknownUser(t *testing.T) {
	svc := createTestServices(t)
	ctx := context.Background()

	_, err := svc.accounts.AssignBadge(ctx, usecase.AssignBadgeInput{UserID: 42, Kind: "icon", ImagePath: "/a.png"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	badges, err := svc.repos().BadgeRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, badges)
}

func TestAccountService_PropagatesUnitOfWorkError(t *testing.T) {
	uow := &mockUnitOfWork{}
	svc := NewAccountService(newTestParams(uow))
	cause := domainerrors.NewDatabaseExecuteError(errors.New("disk full"), "insert")

	uow.On("Execute", mock.Anything, mock.Anything).Return(cause).Once()

	_, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Username: "ana", Email: "ana@x.com", Password: "secret1",
	})
	assert.Same(t, cause, err)
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
	uow.AssertExpectations(t)
}
