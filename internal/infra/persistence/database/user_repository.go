package database

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a user or vendor account by id.
func (repo *userRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	m, err := first[model.UserModel](ctx, repo.db, domainerrors.ErrUserNotFound, fmt.Sprintf("user %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

// FindAll retrieves every account.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	ms, err := list[model.UserModel](ctx, repo.db, "failed to list users", nil)
	if err != nil {
		return nil, err
	}

	return hydrateUsers(ctx, repo.db, ms)
}

// FindByEmail retrieves an account by email, ignoring case.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	m, err := first[model.UserModel](ctx, repo.db, domainerrors.ErrUserNotFound, "email "+email, "LOWER(email) = ?", email)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

// FindByUsername retrieves an account by username, ignoring case.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	m, err := first[model.UserModel](ctx, repo.db, domainerrors.ErrUserNotFound, "username "+username, "LOWER(username) = ?", username)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

// Create persists a new account together with its owned videogames.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Kind == "" {
		user.Kind = entity.AccountKindUser
	}
	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return accountWriteError(err, user)
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return userVideogames.replace(ctx, repo.db, user.ID, user.OwnedVideogameIDs)
}

// Update persists the account fields and its owned videogames.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if err := save(ctx, repo.db, userM, domainerrors.ErrUserNotFound, fmt.Sprintf("user %d", user.ID)); err != nil {
		return err
	}
	user.UpdatedAt = userM.UpdatedAt

	return userVideogames.replace(ctx, repo.db, user.ID, user.OwnedVideogameIDs)
}

// Delete removes the account, its orders and transactions, and detaches
// its reports, support tickets and badges.
func (repo *userRepository) Delete(ctx context.Context, user *entity.User) error {
	return deleteAccount(ctx, repo.db, user.ID, domainerrors.ErrUserNotFound)
}

func (repo *userRepository) one(ctx context.Context, m *model.UserModel) (*entity.User, error) {
	users, err := hydrateUsers(ctx, repo.db, []model.UserModel{*m})
	if err != nil {
		return nil, err
	}

	return users[0], nil
}

// hydrateUsers maps rows to entities and fills every derived collection.
func hydrateUsers(ctx context.Context, db *gorm.DB, ms []model.UserModel) ([]*entity.User, error) {
	ids := idsOf(ms, func(m model.UserModel) uint64 { return m.ID })

	reports, err := userReports.children(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	tickets, err := userSupportTickets.children(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	orders, err := userOrders.children(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	transactions, err := userTransactions.children(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	badges, err := userBadges.children(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	owned, err := userVideogames.targets(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(ms))
	for i := range ms {
		user := toUserDomain(&ms[i])
		user.ReportIDs = reports[user.ID]
		user.SupportTicketIDs = tickets[user.ID]
		user.OrderIDs = orders[user.ID]
		user.TransactionIDs = transactions[user.ID]
		user.BadgeIDs = badges[user.ID]
		user.OwnedVideogameIDs = owned[user.ID]
		users = append(users, user)
	}

	return users, nil
}

func deleteAccount(ctx context.Context, db *gorm.DB, id uint64, notFound *domainerrors.BaseError) error {
	details := fmt.Sprintf("account %d", id)
	if err := remove[model.UserModel](ctx, db, id, notFound, details); err != nil {
		return err
	}

	for _, j := range []joinTable{userVideogames, vendorVideogames} {
		if err := j.deleteOwner(ctx, db, id); err != nil {
			return err
		}
	}
	for _, c := range []childRelation{userReports, userSupportTickets, userBadges} {
		if err := c.detach(ctx, db, id); err != nil {
			return err
		}
	}

	// Orders and transactions cannot exist without their user.
	orderIDs := db.WithContext(ctx).Model(&model.OrderModel{}).Select("id").Where("user_id = ?", id)
	if err := db.WithContext(ctx).Where("order_id IN (?)", orderIDs).Delete(&model.OrderVideogameModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order links of "+details)
	}
	if err := db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.OrderModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete orders of "+details)
	}
	if err := db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete transactions of "+details)
	}

	return nil
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Kind:         entity.AccountKind(m.Kind),
		Username:     m.Username,
		Email:        m.Email,
		Phone:        m.Phone,
		Nickname:     m.Nickname,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           u.ID,
		Kind:         string(u.Kind),
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		Nickname:     u.Nickname,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
