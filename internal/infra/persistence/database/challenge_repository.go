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

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository is the constructor for badgeRepository.
func NewBadgeRepository(db *gorm.DB) repository.BadgeRepository {
	return &badgeRepository{db: db}
}

func (repo *badgeRepository) FindByID(ctx context.Context, id uint64) (*entity.Badge, error) {
	m, err := first[model.BadgeModel](ctx, repo.db, domainerrors.ErrBadgeNotFound, fmt.Sprintf("badge %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	badges, err := repo.hydrate(ctx, []model.BadgeModel{*m})
	if err != nil {
		return nil, err
	}

	return badges[0], nil
}

func (repo *badgeRepository) FindAll(ctx context.Context) ([]*entity.Badge, error) {
	ms, err := list[model.BadgeModel](ctx, repo.db, "failed to list badges", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	m := fromBadgeDomain(badge)
	if err := insert(ctx, repo.db, m, "failed to create badge"); err != nil {
		return err
	}
	badge.ID = m.ID
	badge.CreatedAt = m.CreatedAt
	badge.UpdatedAt = m.UpdatedAt

	return challengeBadges.inverse().replace(ctx, repo.db, badge.ID, badge.ChallengeIDs)
}

func (repo *badgeRepository) Update(ctx context.Context, badge *entity.Badge) error {
	m := fromBadgeDomain(badge)
	if err := save(ctx, repo.db, m, domainerrors.ErrBadgeNotFound, fmt.Sprintf("badge %d", badge.ID)); err != nil {
		return err
	}
	badge.UpdatedAt = m.UpdatedAt

	return challengeBadges.inverse().replace(ctx, repo.db, badge.ID, badge.ChallengeIDs)
}

func (repo *badgeRepository) Delete(ctx context.Context, badge *entity.Badge) error {
	if err := remove[model.BadgeModel](ctx, repo.db, badge.ID, domainerrors.ErrBadgeNotFound, fmt.Sprintf("badge %d", badge.ID)); err != nil {
		return err
	}

	return challengeBadges.inverse().deleteOwner(ctx, repo.db, badge.ID)
}

func (repo *badgeRepository) hydrate(ctx context.Context, ms []model.BadgeModel) ([]*entity.Badge, error) {
	challenges, err := challengeBadges.inverse().targets(ctx, repo.db, idsOf(ms, func(m model.BadgeModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	badges := make([]*entity.Badge, 0, len(ms))
	for _, m := range ms {
		badges = append(badges, &entity.Badge{
			ID:           m.ID,
			Kind:         entity.BadgeKind(m.Kind),
			ImagePath:    m.ImagePath,
			UserID:       m.UserID,
			ChallengeIDs: challenges[m.ID],
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}

	return badges, nil
}

func fromBadgeDomain(b *entity.Badge) *model.BadgeModel {
	return &model.BadgeModel{
		ID:        b.ID,
		Kind:      string(b.Kind),
		ImagePath: b.ImagePath,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository is the constructor for challengeRepository.
func NewChallengeRepository(db *gorm.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func (repo *challengeRepository) FindByID(ctx context.Context, id uint64) (*entity.Challenge, error) {
	m, err := first[model.ChallengeModel](ctx, repo.db, domainerrors.ErrChallengeNotFound, fmt.Sprintf("challenge %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	challenges, err := repo.hydrate(ctx, []model.ChallengeModel{*m})
	if err != nil {
		return nil, err
	}

	return challenges[0], nil
}

func (repo *challengeRepository) FindAll(ctx context.Context) ([]*entity.Challenge, error) {
	ms, err := list[model.ChallengeModel](ctx, repo.db, "failed to list challenges", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *challengeRepository) Create(ctx context.Context, challenge *entity.Challenge) error {
	m := fromChallengeDomain(challenge)
	if err := insert(ctx, repo.db, m, "failed to create challenge "+challenge.Name); err != nil {
		return err
	}
	challenge.ID = m.ID
	challenge.CreatedAt = m.CreatedAt
	challenge.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, challenge)
}

func (repo *challengeRepository) Update(ctx context.Context, challenge *entity.Challenge) error {
	m := fromChallengeDomain(challenge)
	if err := save(ctx, repo.db, m, domainerrors.ErrChallengeNotFound, fmt.Sprintf("challenge %d", challenge.ID)); err != nil {
		return err
	}
	challenge.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, challenge)
}

func (repo *challengeRepository) Delete(ctx context.Context, challenge *entity.Challenge) error {
	if err := remove[model.ChallengeModel](ctx, repo.db, challenge.ID, domainerrors.ErrChallengeNotFound, fmt.Sprintf("challenge %d", challenge.ID)); err != nil {
		return err
	}
	if err := challengeVideogames.deleteOwner(ctx, repo.db, challenge.ID); err != nil {
		return err
	}

	return challengeBadges.deleteOwner(ctx, repo.db, challenge.ID)
}

func (repo *challengeRepository) saveLinks(ctx context.Context, challenge *entity.Challenge) error {
	if err := challengeVideogames.replace(ctx, repo.db, challenge.ID, challenge.VideogameIDs); err != nil {
		return err
	}

	return challengeBadges.replace(ctx, repo.db, challenge.ID, challenge.BadgeIDs)
}

func (repo *challengeRepository) hydrate(ctx context.Context, ms []model.ChallengeModel) ([]*entity.Challenge, error) {
	ids := idsOf(ms, func(m model.ChallengeModel) uint64 { return m.ID })
	videogames, err := challengeVideogames.targets(ctx, repo.db, ids)
	if err != nil {
		return nil, err
	}
	badges, err := challengeBadges.targets(ctx, repo.db, ids)
	if err != nil {
		return nil, err
	}

	challenges := make([]*entity.Challenge, 0, len(ms))
	for _, m := range ms {
		challenges = append(challenges, &entity.Challenge{
			ID:           m.ID,
			Name:         m.Name,
			Description:  m.Description,
			VideogameIDs: videogames[m.ID],
			BadgeIDs:     badges[m.ID],
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}

	return challenges, nil
}

func fromChallengeDomain(c *entity.Challenge) *model.ChallengeModel {
	return &model.ChallengeModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
