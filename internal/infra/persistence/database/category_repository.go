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

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uint64) (*entity.Category, error) {
	m, err := first[model.CategoryModel](ctx, repo.db, domainerrors.ErrCategoryNotFound, fmt.Sprintf("category %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

// FindByName retrieves a category by name, ignoring case.
func (repo *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	m, err := first[model.CategoryModel](ctx, repo.db, domainerrors.ErrCategoryNotFound, "category "+name, "LOWER(name) = ?", name)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

func (repo *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	ms, err := list[model.CategoryModel](ctx, repo.db, "failed to list categories", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	m := fromCategoryDomain(category)
	if err := insert(ctx, repo.db, m, "failed to create category "+category.Name); err != nil {
		return err
	}
	category.ID = m.ID
	category.CreatedAt = m.CreatedAt
	category.UpdatedAt = m.UpdatedAt

	return nil
}

// Update persists the category fields. Membership is owned by the videogame side.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	m := fromCategoryDomain(category)
	if err := save(ctx, repo.db, m, domainerrors.ErrCategoryNotFound, fmt.Sprintf("category %d", category.ID)); err != nil {
		return err
	}
	category.UpdatedAt = m.UpdatedAt

	return nil
}

// Delete removes the category and leaves its videogames uncategorized.
func (repo *categoryRepository) Delete(ctx context.Context, category *entity.Category) error {
	if err := remove[model.CategoryModel](ctx, repo.db, category.ID, domainerrors.ErrCategoryNotFound, fmt.Sprintf("category %d", category.ID)); err != nil {
		return err
	}

	return categoryVideogames.detach(ctx, repo.db, category.ID)
}

func (repo *categoryRepository) one(ctx context.Context, m *model.CategoryModel) (*entity.Category, error) {
	categories, err := repo.hydrate(ctx, []model.CategoryModel{*m})
	if err != nil {
		return nil, err
	}

	return categories[0], nil
}

func (repo *categoryRepository) hydrate(ctx context.Context, ms []model.CategoryModel) ([]*entity.Category, error) {
	videogames, err := categoryVideogames.children(ctx, repo.db, idsOf(ms, func(m model.CategoryModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(ms))
	for _, m := range ms {
		categories = append(categories, &entity.Category{
			ID:           m.ID,
			Name:         m.Name,
			Description:  m.Description,
			VideogameIDs: videogames[m.ID],
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}

	return categories, nil
}

func fromCategoryDomain(c *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
