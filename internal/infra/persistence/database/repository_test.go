package database_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/database"
	"marketplace/internal/infra/persistence/database/databasetest"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) repository.RepositoryFactory {
	t.Helper()

	return database.NewUnitOfWork(databasetest.Open(t)).Repositories()
}

func createUser(t *testing.T, repos repository.RepositoryFactory, username, email string) *entity.User {
	t.Helper()

	user, err := entity.NewUser(username, email, "555", username)
	require.NoError(t, err)
	user.PasswordHash = "hash"
	require.NoError(t, repos.UserRepo().Create(context.Background(), user))

	return user
}

func createVideogame(t *testing.T, repos repository.RepositoryFactory, price string, categoryID *uint64) *entity.Videogame {
	t.Helper()

	videogame, err := entity.NewVideogame(decimal.RequireFromString(price), categoryID)
	require.NoError(t, err)
	require.NoError(t, repos.VideogameRepo().Create(context.Background(), videogame))

	return videogame
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	user := createUser(t, repos, "Ana", "Ana@X.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repos.UserRepo().FindByEmail(ctx, "ANA@x.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "ana@x.com", byEmail.Email)

	byUsername, err := repos.UserRepo().FindByUsername(ctx, "aNa")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = repos.UserRepo().FindByID(ctx, user.ID+100)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	repos := newRepos(t)
	createUser(t, repos, "ana", "ana@x.com")

	dup, err := entity.NewUser("bob", "ana@x.com", "", "")
	require.NoError(t, err)
	err = repos.UserRepo().Create(context.Background(), dup)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
}

func TestUserRepository_DuplicateUsernameIgnoresCase(t *testing.T) {
	repos := newRepos(t)
	createUser(t, repos, "Ana", "ana@x.com")

	dup, err := entity.NewUser("aNA", "other@x.com", "", "")
	require.NoError(t, err)
	err = repos.UserRepo().Create(context.Background(), dup)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))

	users, err := repos.UserRepo().FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repos := newRepos(t)

	err := repos.UserRepo().Update(context.Background(), &entity.User{ID: 42, Kind: entity.AccountKindUser, Username: "x", Email: "x@x.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestVendorRepository_OnlyVendors(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	user := createUser(t, repos, "ana", "ana@x.com")

	vendor, err := entity.NewVendor("shop", "shop@x.com", "", "")
	require.NoError(t, err)
	require.NoError(t, repos.VendorRepo().Create(ctx, vendor))

	_, err = repos.VendorRepo().FindByID(ctx, user.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrVendorNotFound))

	asUser, err := repos.UserRepo().FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.True(t, asUser.IsVendor())

	vendors, err := repos.VendorRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, vendor.ID, vendors[0].ID)
}

func TestRepositories_ManyToManyBothSides(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	user := createUser(t, repos, "ana", "ana@x.com")
	videogame := createVideogame(t, repos, "10", nil)

	entity.LinkOwnedVideogame(user, videogame)
	require.NoError(t, repos.UserRepo().Update(ctx, user))
	require.NoError(t, repos.VideogameRepo().Update(ctx, videogame))

	reloadedUser, err := repos.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{videogame.ID}, reloadedUser.OwnedVideogameIDs)

	reloadedVideogame, err := repos.VideogameRepo().FindByID(ctx, videogame.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{user.ID}, reloadedVideogame.OwnerIDs)
	assert.True(t, decimal.NewFromInt(10).Equal(reloadedVideogame.Price))

	// deleting the videogame removes the link from the user side too
	require.NoError(t, repos.VideogameRepo().Delete(ctx, reloadedVideogame))
	reloadedUser, err = repos.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reloadedUser.OwnedVideogameIDs)
}

func TestVideogameRepository_FindByCategoryName(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	category, err := entity.NewCategory("Action", "fast games")
	require.NoError(t, err)
	require.NoError(t, repos.CategoryRepo().Create(ctx, category))

	first := createVideogame(t, repos, "15.50", &category.ID)
	createVideogame(t, repos, "20", nil)

	found, err := repos.VideogameRepo().FindByCategoryName(ctx, "action")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	for _, name := range []string{"", "   ", "Puzzle"} {
		found, err := repos.VideogameRepo().FindByCategoryName(ctx, name)
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	}

	reloaded, err := repos.CategoryRepo().FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{first.ID}, reloaded.VideogameIDs)

	require.NoError(t, repos.CategoryRepo().Delete(ctx, reloaded))
	orphan, err := repos.VideogameRepo().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CategoryID)
}

func TestTransactionRepository_FindByPaymentMethod(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	user := createUser(t, repos, "ana", "ana@x.com")
	now := time.Now()

	for _, method := range []string{"card", "Card", "cash"} {
		transaction, err := entity.NewTransaction(now, decimal.NewFromInt(5), method, entity.OperationKindCharge, user.ID, now)
		require.NoError(t, err)
		require.NoError(t, repos.TransactionRepo().Create(ctx, transaction))
	}

	cards, err := repos.TransactionRepo().FindByPaymentMethod(ctx, "CARD")
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	none, err := repos.TransactionRepo().FindByPaymentMethod(ctx, " ")
	require.NoError(t, err)
	assert.Empty(t, none)

	reloaded, err := repos.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.TransactionIDs, 3)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	user := createUser(t, repos, "ana", "ana@x.com")
	videogame := createVideogame(t, repos, "10", nil)

	order, err := entity.NewOrder(user.ID, videogame.Price)
	require.NoError(t, err)
	require.NoError(t, repos.OrderRepo().Create(ctx, order))
	entity.LinkOrderVideogame(order, videogame)
	require.NoError(t, repos.OrderRepo().Update(ctx, order))
	require.NoError(t, repos.VideogameRepo().Update(ctx, videogame))

	badge, err := entity.NewBadge(entity.BadgeKindFrame, "frame.png")
	require.NoError(t, err)
	entity.LinkUserBadge(user, badge)
	require.NoError(t, repos.BadgeRepo().Create(ctx, badge))

	require.NoError(t, repos.UserRepo().Delete(ctx, user))

	_, err = repos.OrderRepo().FindByID(ctx, order.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))

	reloadedBadge, err := repos.BadgeRepo().FindByID(ctx, badge.ID)
	require.NoError(t, err)
	assert.Nil(t, reloadedBadge.UserID)

	reloadedVideogame, err := repos.VideogameRepo().FindByID(ctx, videogame.ID)
	require.NoError(t, err)
	assert.Empty(t, reloadedVideogame.OrderIDs)

	err = repos.UserRepo().Delete(ctx, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestReportRepository_ModeratorLinksAndState(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	now := time.Now()

	moderator, err := entity.NewModerator("mod@x.com")
	require.NoError(t, err)
	moderator.PasswordHash = "hash"
	require.NoError(t, repos.ModeratorRepo().Create(ctx, moderator))

	report, err := entity.NewReport("bob", "spam", now, now)
	require.NoError(t, err)
	require.NoError(t, repos.ReportRepo().Create(ctx, report))

	entity.LinkModeratorReport(moderator, report)
	require.NoError(t, report.TransitionTo(entity.ReportStateSolved))
	require.NoError(t, repos.ModeratorRepo().Update(ctx, moderator))
	require.NoError(t, repos.ReportRepo().Update(ctx, report))

	solved, err := repos.ReportRepo().FindByState(ctx, entity.ReportStateSolved)
	require.NoError(t, err)
	require.Len(t, solved, 1)
	assert.Equal(t, entity.IDs{moderator.ID}, solved[0].ModeratorIDs)

	unsolved, err := repos.ReportRepo().FindByState(ctx, entity.ReportStateUnsolved)
	require.NoError(t, err)
	assert.Empty(t, unsolved)

	byEmail, err := repos.ModeratorRepo().FindByEmail(ctx, "MOD@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{report.ID}, byEmail.ReportIDs)
}

func TestChallengeRepository_Links(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	videogame := createVideogame(t, repos, "30", nil)
	badge, err := entity.NewBadge(entity.BadgeKindIcon, "icon.png")
	require.NoError(t, err)
	require.NoError(t, repos.BadgeRepo().Create(ctx, badge))

	challenge, err := entity.NewChallenge("Speedrun", "finish fast")
	require.NoError(t, err)
	require.NoError(t, repos.ChallengeRepo().Create(ctx, challenge))

	entity.LinkChallengeVideogame(challenge, videogame)
	entity.LinkChallengeBadge(challenge, badge)
	require.NoError(t, repos.ChallengeRepo().Update(ctx, challenge))
	require.NoError(t, repos.VideogameRepo().Update(ctx, videogame))
	require.NoError(t, repos.BadgeRepo().Update(ctx, badge))

	reloaded, err := repos.ChallengeRepo().FindByID(ctx, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{videogame.ID}, reloaded.VideogameIDs)
	assert.Equal(t, entity.IDs{badge.ID}, reloaded.BadgeIDs)

	reloadedBadge, err := repos.BadgeRepo().FindByID(ctx, badge.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IDs{challenge.ID}, reloadedBadge.ChallengeIDs)

	require.NoError(t, repos.ChallengeRepo().Delete(ctx, reloaded))
	reloadedVideogame, err := repos.VideogameRepo().FindByID(ctx, videogame.ID)
	require.NoError(t, err)
	assert.Empty(t, reloadedVideogame.ChallengeIDs)
}
