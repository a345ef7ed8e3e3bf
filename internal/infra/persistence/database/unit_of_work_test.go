package database_test

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/database"
	"marketplace/internal/infra/persistence/database/databasetest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *entity.User {
	t.Helper()

	user, err := entity.NewUser("ana", "ana@x.com", "555", "an")
	require.NoError(t, err)
	user.PasswordHash = "hash"

	return user
}

func countUsers(t *testing.T, uow repository.UnitOfWork) int {
	t.Helper()

	users, err := uow.Repositories().UserRepo().FindAll(context.Background())
	require.NoError(t, err)

	return len(users)
}

func TestUnitOfWork_ExecuteCommits(t *testing.T) {
	uow := database.NewUnitOfWork(databasetest.Open(t))

	err := uow.Execute(context.Background(), func(repos repository.RepositoryFactory) error {
		return repos.UserRepo().Create(context.Background(), newTestUser(t))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, uow))
}

func TestUnitOfWork_ExecuteRollsBackAndKeepsError(t *testing.T) {
	uow := database.NewUnitOfWork(databasetest.Open(t))
	cause := domainerrors.ErrSelfReport.WithDetails("ana")

	err := uow.Execute(context.Background(), func(repos repository.RepositoryFactory) error {
		if err := repos.UserRepo().Create(context.Background(), newTestUser(t)); err != nil {
			return err
		}

		return cause
	})
	require.Error(t, err)
	assert.Same(t, cause, err)
	assert.Equal(t, 0, countUsers(t, uow))
}

func TestUnitOfWork_ExecuteRollsBackOnPanic(t *testing.T) {
	uow := database.NewUnitOfWork(databasetest.Open(t))

	assert.Panics(t, func() {
		_ = uow.Execute(context.Background(), func(repos repository.RepositoryFactory) error {
			if err := repos.UserRepo().Create(context.Background(), newTestUser(t)); err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.Equal(t, 0, countUsers(t, uow))
}

func TestUnitOfWork_ExplicitTransaction(t *testing.T) {
	ctx := context.Background()
	uow := database.NewUnitOfWork(databasetest.Open(t))

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Repositories().UserRepo().Create(ctx, newTestUser(t)))
		require.NoError(t, tx.Rollback())

		assert.Equal(t, 0, countUsers(t, uow))
	})

	t.Run("commit applies writes and later rollback is a no-op", func(t *testing.T) {
		tx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Repositories().UserRepo().Create(ctx, newTestUser(t)))
		require.NoError(t, tx.Commit())

		assert.NoError(t, tx.Rollback())
		assert.True(t, errors.Is(tx.Commit(), database.ErrTxDone))
		assert.Equal(t, 1, countUsers(t, uow))
	})
}

func TestUnitOfWork_SaveChanges(t *testing.T) {
	ctx := context.Background()
	uow := database.NewUnitOfWork(databasetest.Open(t))

	require.NoError(t, uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		return repos.UserRepo().Create(ctx, newTestUser(t))
	}))
	assert.Equal(t, 1, countUsers(t, uow))

	err := uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByEmail(ctx, "ana@x.com")
		if err != nil {
			return err
		}
		user.Nickname = "changed"
		if err := repos.UserRepo().Update(ctx, user); err != nil {
			return err
		}

		return domainerrors.ErrAdminAccount
	})
	assert.True(t, errors.Is(err, domainerrors.ErrAdminAccount))

	user, err := uow.Repositories().UserRepo().FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "an", user.Nickname)
}
