package database

import (
	"context"
	"fmt"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// vendorRepository implements repository.VendorRepository. Vendors live in
// the users table with kind 'vendor'.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

// FindByID retrieves a vendor by id. Plain users are reported as not found.
func (repo *vendorRepository) FindByID(ctx context.Context, id uint64) (*entity.Vendor, error) {
	m, err := first[model.UserModel](ctx, repo.db, domainerrors.ErrVendorNotFound, fmt.Sprintf("vendor %d", id),
		"id = ? AND kind = ?", id, string(entity.AccountKindVendor))
	if err != nil {
		return nil, err
	}

	vendors, err := repo.hydrate(ctx, []model.UserModel{*m})
	if err != nil {
		return nil, err
	}

	return vendors[0], nil
}

// FindAll retrieves every vendor.
func (repo *vendorRepository) FindAll(ctx context.Context) ([]*entity.Vendor, error) {
	ms, err := list[model.UserModel](ctx, repo.db, "failed to list vendors", "kind = ?", string(entity.AccountKindVendor))
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

// Create persists a new vendor together with its published videogames.
func (repo *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	vendor.Kind = entity.AccountKindVendor
	if err := NewUserRepository(repo.db).Create(ctx, &vendor.User); err != nil {
		return err
	}

	return vendorVideogames.replace(ctx, repo.db, vendor.ID, vendor.PublishedVideogameIDs)
}

// Update persists the account fields and both videogame collections.
func (repo *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	vendor.Kind = entity.AccountKindVendor
	userM := fromUserDomain(&vendor.User)
	if err := save(ctx, repo.db.Where("kind = ?", string(entity.AccountKindVendor)), userM,
		domainerrors.ErrVendorNotFound, fmt.Sprintf("vendor %d", vendor.ID)); err != nil {
		return err
	}
	vendor.UpdatedAt = userM.UpdatedAt

	if err := userVideogames.replace(ctx, repo.db, vendor.ID, vendor.OwnedVideogameIDs); err != nil {
		return err
	}

	return vendorVideogames.replace(ctx, repo.db, vendor.ID, vendor.PublishedVideogameIDs)
}

// Delete removes the vendor like any other account.
func (repo *vendorRepository) Delete(ctx context.Context, vendor *entity.Vendor) error {
	return deleteAccount(ctx, repo.db, vendor.ID, domainerrors.ErrVendorNotFound)
}

func (repo *vendorRepository) hydrate(ctx context.Context, ms []model.UserModel) ([]*entity.Vendor, error) {
	users, err := hydrateUsers(ctx, repo.db, ms)
	if err != nil {
		return nil, err
	}
	published, err := vendorVideogames.targets(ctx, repo.db, idsOf(ms, func(m model.UserModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	vendors := make([]*entity.Vendor, 0, len(users))
	for _, user := range users {
		vendors = append(vendors, &entity.Vendor{User: *user, PublishedVideogameIDs: published[user.ID]})
	}

	return vendors, nil
}
