package database

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"
	"marketplace/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type videogameRepository struct {
	db *gorm.DB
}

// NewVideogameRepository is the constructor for videogameRepository.
func NewVideogameRepository(db *gorm.DB) repository.VideogameRepository {
	return &videogameRepository{db: db}
}

func (repo *videogameRepository) FindByID(ctx context.Context, id uint64) (*entity.Videogame, error) {
	m, err := first[model.VideogameModel](ctx, repo.db, domainerrors.ErrVideogameNotFound, fmt.Sprintf("videogame %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	videogames, err := repo.hydrate(ctx, []model.VideogameModel{*m})
	if err != nil {
		return nil, err
	}

	return videogames[0], nil
}

func (repo *videogameRepository) FindAll(ctx context.Context) ([]*entity.Videogame, error) {
	ms, err := list[model.VideogameModel](ctx, repo.db, "failed to list videogames", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

// FindByCategoryName resolves the category by name first; blank or unknown
// names yield no videogames.
func (repo *videogameRepository) FindByCategoryName(ctx context.Context, name string) ([]*entity.Videogame, error) {
	if strings.TrimSpace(name) == "" {
		return []*entity.Videogame{}, nil
	}

	category, err := NewCategoryRepository(repo.db).FindByName(ctx, name)
	if errors.Is(err, domainerrors.ErrCategoryNotFound) {
		return []*entity.Videogame{}, nil
	}
	if err != nil {
		return nil, err
	}

	return repo.FindByCategoryID(ctx, category.ID)
}

func (repo *videogameRepository) FindByCategoryID(ctx context.Context, categoryID uint64) ([]*entity.Videogame, error) {
	ms, err := list[model.VideogameModel](ctx, repo.db, "failed to list videogames by category", "category_id = ?", categoryID)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *videogameRepository) Create(ctx context.Context, videogame *entity.Videogame) error {
	m := fromVideogameDomain(videogame)
	if err := insert(ctx, repo.db, m, "failed to create videogame"); err != nil {
		return err
	}
	videogame.ID = m.ID
	videogame.CreatedAt = m.CreatedAt
	videogame.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, videogame)
}

func (repo *videogameRepository) Update(ctx context.Context, videogame *entity.Videogame) error {
	m := fromVideogameDomain(videogame)
	if err := save(ctx, repo.db, m, domainerrors.ErrVideogameNotFound, fmt.Sprintf("videogame %d", videogame.ID)); err != nil {
		return err
	}
	videogame.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, videogame)
}

func (repo *videogameRepository) Delete(ctx context.Context, videogame *entity.Videogame) error {
	if err := remove[model.VideogameModel](ctx, repo.db, videogame.ID, domainerrors.ErrVideogameNotFound, fmt.Sprintf("videogame %d", videogame.ID)); err != nil {
		return err
	}

	for _, j := range videogameSides() {
		if err := j.table.deleteOwner(ctx, repo.db, videogame.ID); err != nil {
			return err
		}
	}

	return nil
}

type videogameSide struct {
	table joinTable
	ids   func(*entity.Videogame) *entity.IDs
}

// videogameSides lists the join tables seen from the videogame.
func videogameSides() []videogameSide {
	return []videogameSide{
		{userVideogames.inverse(), func(v *entity.Videogame) *entity.IDs { return &v.OwnerIDs }},
		{vendorVideogames.inverse(), func(v *entity.Videogame) *entity.IDs { return &v.PublisherIDs }},
		{orderVideogames.inverse(), func(v *entity.Videogame) *entity.IDs { return &v.OrderIDs }},
		{challengeVideogames.inverse(), func(v *entity.Videogame) *entity.IDs { return &v.ChallengeIDs }},
	}
}

func (repo *videogameRepository) saveLinks(ctx context.Context, videogame *entity.Videogame) error {
	for _, side := range videogameSides() {
		if err := side.table.replace(ctx, repo.db, videogame.ID, *side.ids(videogame)); err != nil {
			return err
		}
	}

	return nil
}

func (repo *videogameRepository) hydrate(ctx context.Context, ms []model.VideogameModel) ([]*entity.Videogame, error) {
	ids := idsOf(ms, func(m model.VideogameModel) uint64 { return m.ID })

	videogames := make([]*entity.Videogame, 0, len(ms))
	for _, m := range ms {
		videogames = append(videogames, &entity.Videogame{
			ID:         m.ID,
			Price:      m.Price,
			CategoryID: m.CategoryID,
			CreatedAt:  m.CreatedAt,
			UpdatedAt:  m.UpdatedAt,
		})
	}

	for _, side := range videogameSides() {
		links, err := side.table.targets(ctx, repo.db, ids)
		if err != nil {
			return nil, err
		}
		for _, v := range videogames {
			*side.ids(v) = links[v.ID]
		}
	}

	return videogames, nil
}

func fromVideogameDomain(v *entity.Videogame) *model.VideogameModel {
	return &model.VideogameModel{
		ID:         v.ID,
		Price:      v.Price,
		CategoryID: v.CategoryID,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
