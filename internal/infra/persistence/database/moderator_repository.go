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

type moderatorRepository struct {
	db *gorm.DB
}

// NewModeratorRepository is the constructor for moderatorRepository.
func NewModeratorRepository(db *gorm.DB) repository.ModeratorRepository {
	return &moderatorRepository{db: db}
}

func (repo *moderatorRepository) FindByID(ctx context.Context, id uint64) (*entity.Moderator, error) {
	m, err := first[model.ModeratorModel](ctx, repo.db, domainerrors.ErrModeratorNotFound, fmt.Sprintf("moderator %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

// FindByEmail retrieves a moderator by email, ignoring case.
func (repo *moderatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Moderator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	m, err := first[model.ModeratorModel](ctx, repo.db, domainerrors.ErrModeratorNotFound, "email "+email, "LOWER(email) = ?", email)
	if err != nil {
		return nil, err
	}

	return repo.one(ctx, m)
}

func (repo *moderatorRepository) FindAll(ctx context.Context) ([]*entity.Moderator, error) {
	ms, err := list[model.ModeratorModel](ctx, repo.db, "failed to list moderators", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *moderatorRepository) Create(ctx context.Context, moderator *entity.Moderator) error {
	m := fromModeratorDomain(moderator)
	if err := insert(ctx, repo.db, m, "failed to create moderator "+moderator.Email); err != nil {
		return err
	}
	moderator.ID = m.ID
	moderator.CreatedAt = m.CreatedAt
	moderator.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, moderator)
}

func (repo *moderatorRepository) Update(ctx context.Context, moderator *entity.Moderator) error {
	m := fromModeratorDomain(moderator)
	if err := save(ctx, repo.db, m, domainerrors.ErrModeratorNotFound, fmt.Sprintf("moderator %d", moderator.ID)); err != nil {
		return err
	}
	moderator.UpdatedAt = m.UpdatedAt

	return repo.saveLinks(ctx, moderator)
}

func (repo *moderatorRepository) Delete(ctx context.Context, moderator *entity.Moderator) error {
	if err := remove[model.ModeratorModel](ctx, repo.db, moderator.ID, domainerrors.ErrModeratorNotFound, fmt.Sprintf("moderator %d", moderator.ID)); err != nil {
		return err
	}
	if err := moderatorReports.deleteOwner(ctx, repo.db, moderator.ID); err != nil {
		return err
	}

	return moderatorSupportTickets.deleteOwner(ctx, repo.db, moderator.ID)
}

func (repo *moderatorRepository) saveLinks(ctx context.Context, moderator *entity.Moderator) error {
	if err := moderatorReports.replace(ctx, repo.db, moderator.ID, moderator.ReportIDs); err != nil {
		return err
	}

	return moderatorSupportTickets.replace(ctx, repo.db, moderator.ID, moderator.SupportTicketIDs)
}

func (repo *moderatorRepository) one(ctx context.Context, m *model.ModeratorModel) (*entity.Moderator, error) {
	moderators, err := repo.hydrate(ctx, []model.ModeratorModel{*m})
	if err != nil {
		return nil, err
	}

	return moderators[0], nil
}

func (repo *moderatorRepository) hydrate(ctx context.Context, ms []model.ModeratorModel) ([]*entity.Moderator, error) {
	ids := idsOf(ms, func(m model.ModeratorModel) uint64 { return m.ID })
	reports, err := moderatorReports.targets(ctx, repo.db, ids)
	if err != nil {
		return nil, err
	}
	tickets, err := moderatorSupportTickets.targets(ctx, repo.db, ids)
	if err != nil {
		return nil, err
	}

	moderators := make([]*entity.Moderator, 0, len(ms))
	for _, m := range ms {
		moderators = append(moderators, &entity.Moderator{
			ID:               m.ID,
			Email:            m.Email,
			PasswordHash:     m.PasswordHash,
			ReportIDs:        reports[m.ID],
			SupportTicketIDs: tickets[m.ID],
			CreatedAt:        m.CreatedAt,
			UpdatedAt:        m.UpdatedAt,
		})
	}

	return moderators, nil
}

func fromModeratorDomain(m *entity.Moderator) *model.ModeratorModel {
	return &model.ModeratorModel{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
