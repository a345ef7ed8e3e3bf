package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/auth"
	"marketplace/internal/infra/persistence/database"
	"marketplace/internal/infra/persistence/database/databasetest"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

// serviceFixtures wires every orchestrator to one throwaway database.
type serviceFixtures struct {
	uow        repository.UnitOfWork
	accounts   *accountService
	moderators *moderatorService
	moderation *moderationService
	catalog    *catalogService
	purchases  *purchaseService
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestParams(uow repository.UnitOfWork) ServiceParams {
	return ServiceParams{
		UnitOfWork: uow,
		Hasher:     auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Config:     &config.Config{Rules: config.DefaultRules()},
		Logger:     newDiscardLogger(),
	}
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	uow := database.NewUnitOfWork(databasetest.Open(t))
	params := newTestParams(uow)
	clock := func() time.Time { return fixedNow }

	svc := serviceFixtures{
		uow:        uow,
		accounts:   NewAccountService(params).(*accountService),
		moderators: NewModeratorService(params).(*moderatorService),
		moderation: NewModerationService(params).(*moderationService),
		catalog:    NewCatalogService(params).(*catalogService),
		purchases:  NewPurchaseService(params).(*purchaseService),
	}
	svc.accounts.now = clock
	svc.moderators.now = clock
	svc.moderation.now = clock
	svc.catalog.now = clock
	svc.purchases.now = clock

	return svc
}

func (svc serviceFixtures) repos() repository.RepositoryFactory {
	return svc.uow.Repositories()
}

func (svc serviceFixtures) registerUser(t *testing.T, username string) uint64 {
	t.Helper()

	id, err := svc.accounts.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Username: username,
		Email:    username + "@x.com",
		Phone:    "555",
		Nickname: username,
		Password: "secret1",
	})
	require.NoError(t, err)

	return id
}

func (svc serviceFixtures) registerVendor(t *testing.T, username string) uint64 {
	t.Helper()

	id, err := svc.accounts.RegisterVendor(context.Background(), usecase.RegisterUserInput{
		Username: username,
		Email:    username + "@shop.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	return id
}

func (svc serviceFixtures) createModerator(t *testing.T, email string) uint64 {
	t.Helper()

	id, err := svc.moderators.CreateModerator(context.Background(), usecase.CreateModeratorInput{
		Email:    email,
		Password: "moderator1",
	})
	require.NoError(t, err)

	return id
}

func (svc serviceFixtures) createCategory(t *testing.T, name string) uint64 {
	t.Helper()

	id, err := svc.catalog.CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: name})
	require.NoError(t, err)

	return id
}

func (svc serviceFixtures) publish(t *testing.T, vendorID, categoryID uint64, price string) uint64 {
	t.Helper()

	id, err := svc.catalog.PublishVideogame(context.Background(), usecase.PublishVideogameInput{
		VendorID:   vendorID,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString(price),
	})
	require.NoError(t, err)

	return id
}

func (svc serviceFixtures) user(t *testing.T, id uint64) *entity.User {
	t.Helper()

	user, err := svc.repos().UserRepo().FindByID(context.Background(), id)
	require.NoError(t, err)

	return user
}

func (svc serviceFixtures) videogame(t *testing.T, id uint64) *entity.Videogame {
	t.Helper()

	v, err := svc.repos().VideogameRepo().FindByID(context.Background(), id)
	require.NoError(t, err)

	return v
}

// mockUnitOfWork is a testify mock used to check error propagation without a database.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(repository.Tx)

	return tx, args.Error(1)
}

func (m *mockUnitOfWork) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

func (m *mockUnitOfWork) SaveChanges(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

func (m *mockUnitOfWork) Repositories() repository.RepositoryFactory {
	factory, _ := m.Called().Get(0).(repository.RepositoryFactory)

	return factory
}

// failingUnitOfWork runs transactions on the real database but makes Update
// fail for the selected accounts, so every write issued before it must be
// rolled back.
type failingUnitOfWork struct {
	repository.UnitOfWork

	cause       error
	failUsers   bool
	failVendors bool
	executions  int
}

func (u *failingUnitOfWork) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	u.executions++

	return u.UnitOfWork.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return fn(&failingRepositoryFactory{RepositoryFactory: repos, uow: u})
	})
}

type failingRepositoryFactory struct {
	repository.RepositoryFactory

	uow *failingUnitOfWork
}

func (f *failingRepositoryFactory) UserRepo() repository.UserRepository {
	repo := f.RepositoryFactory.UserRepo()
	if !f.uow.failUsers {
		return repo
	}

	return &failingUserRepo{UserRepository: repo, cause: f.uow.cause}
}

func (f *failingRepositoryFactory) VendorRepo() repository.VendorRepository {
	repo := f.RepositoryFactory.VendorRepo()
	if !f.uow.failVendors {
		return repo
	}

	return &failingVendorRepo{VendorRepository: repo, cause: f.uow.cause}
}

type failingUserRepo struct {
	repository.UserRepository

	cause error
}

func (r *failingUserRepo) Update(context.Context, *entity.User) error {
	return r.cause
}

type failingVendorRepo struct {
	repository.VendorRepository

	cause error
}

func (r *failingVendorRepo) Update(context.Context, *entity.Vendor) error {
	return r.cause
}
