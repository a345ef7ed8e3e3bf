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

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) FindByID(ctx context.Context, id uint64) (*entity.Report, error) {
	m, err := first[model.ReportModel](ctx, repo.db, domainerrors.ErrReportNotFound, fmt.Sprintf("report %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	reports, err := repo.hydrate(ctx, []model.ReportModel{*m})
	if err != nil {
		return nil, err
	}

	return reports[0], nil
}

func (repo *reportRepository) FindAll(ctx context.Context) ([]*entity.Report, error) {
	ms, err := list[model.ReportModel](ctx, repo.db, "failed to list reports", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *reportRepository) FindByState(ctx context.Context, state entity.ReportState) ([]*entity.Report, error) {
	ms, err := list[model.ReportModel](ctx, repo.db, "failed to list reports by state", "state = ?", string(state))
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	m := fromReportDomain(report)
	if err := insert(ctx, repo.db, m, "failed to create report"); err != nil {
		return err
	}
	report.ID = m.ID
	report.CreatedAt = m.CreatedAt
	report.UpdatedAt = m.UpdatedAt

	return moderatorReports.inverse().replace(ctx, repo.db, report.ID, report.ModeratorIDs)
}

func (repo *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	m := fromReportDomain(report)
	if err := save(ctx, repo.db, m, domainerrors.ErrReportNotFound, fmt.Sprintf("report %d", report.ID)); err != nil {
		return err
	}
	report.UpdatedAt = m.UpdatedAt

	return moderatorReports.inverse().replace(ctx, repo.db, report.ID, report.ModeratorIDs)
}

func (repo *reportRepository) Delete(ctx context.Context, report *entity.Report) error {
	if err := remove[model.ReportModel](ctx, repo.db, report.ID, domainerrors.ErrReportNotFound, fmt.Sprintf("report %d", report.ID)); err != nil {
		return err
	}

	return moderatorReports.inverse().deleteOwner(ctx, repo.db, report.ID)
}

func (repo *reportRepository) hydrate(ctx context.Context, ms []model.ReportModel) ([]*entity.Report, error) {
	moderators, err := moderatorReports.inverse().targets(ctx, repo.db, idsOf(ms, func(m model.ReportModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	reports := make([]*entity.Report, 0, len(ms))
	for _, m := range ms {
		reports = append(reports, &entity.Report{
			ID:               m.ID,
			ReportedUsername: m.ReportedUsername,
			Reason:           m.Reason,
			Date:             m.Date,
			State:            entity.ReportState(m.State),
			UserID:           m.UserID,
			ModeratorIDs:     moderators[m.ID],
			CreatedAt:        m.CreatedAt,
			UpdatedAt:        m.UpdatedAt,
		})
	}

	return reports, nil
}

func fromReportDomain(r *entity.Report) *model.ReportModel {
	return &model.ReportModel{
		ID:               r.ID,
		ReportedUsername: r.ReportedUsername,
		Reason:           r.Reason,
		Date:             r.Date,
		State:            string(r.State),
		UserID:           r.UserID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type supportTicketRepository struct {
	db *gorm.DB
}

// NewSupportTicketRepository is the constructor for supportTicketRepository.
func NewSupportTicketRepository(db *gorm.DB) repository.SupportTicketRepository {
	return &supportTicketRepository{db: db}
}

func (repo *supportTicketRepository) FindByID(ctx context.Context, id uint64) (*entity.SupportTicket, error) {
	m, err := first[model.SupportTicketModel](ctx, repo.db, domainerrors.ErrSupportTicketNotFound, fmt.Sprintf("support ticket %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	tickets, err := repo.hydrate(ctx, []model.SupportTicketModel{*m})
	if err != nil {
		return nil, err
	}

	return tickets[0], nil
}

func (repo *supportTicketRepository) FindAll(ctx context.Context) ([]*entity.SupportTicket, error) {
	ms, err := list[model.SupportTicketModel](ctx, repo.db, "failed to list support tickets", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *supportTicketRepository) FindByState(ctx context.Context, state entity.SupportTicketState) ([]*entity.SupportTicket, error) {
	ms, err := list[model.SupportTicketModel](ctx, repo.db, "failed to list support tickets by state", "state = ?", string(state))
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *supportTicketRepository) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	m := fromSupportTicketDomain(ticket)
	if err := insert(ctx, repo.db, m, "failed to create support ticket"); err != nil {
		return err
	}
	ticket.ID = m.ID
	ticket.CreatedAt = m.CreatedAt
	ticket.UpdatedAt = m.UpdatedAt

	return moderatorSupportTickets.inverse().replace(ctx, repo.db, ticket.ID, ticket.ModeratorIDs)
}

func (repo *supportTicketRepository) Update(ctx context.Context, ticket *entity.SupportTicket) error {
	m := fromSupportTicketDomain(ticket)
	if err := save(ctx, repo.db, m, domainerrors.ErrSupportTicketNotFound, fmt.Sprintf("support ticket %d", ticket.ID)); err != nil {
		return err
	}
	ticket.UpdatedAt = m.UpdatedAt

	return moderatorSupportTickets.inverse().replace(ctx, repo.db, ticket.ID, ticket.ModeratorIDs)
}

func (repo *supportTicketRepository) Delete(ctx context.Context, ticket *entity.SupportTicket) error {
	if err := remove[model.SupportTicketModel](ctx, repo.db, ticket.ID, domainerrors.ErrSupportTicketNotFound, fmt.Sprintf("support ticket %d", ticket.ID)); err != nil {
		return err
	}

	return moderatorSupportTickets.inverse().deleteOwner(ctx, repo.db, ticket.ID)
}

func (repo *supportTicketRepository) hydrate(ctx context.Context, ms []model.SupportTicketModel) ([]*entity.SupportTicket, error) {
	moderators, err := moderatorSupportTickets.inverse().targets(ctx, repo.db, idsOf(ms, func(m model.SupportTicketModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	tickets := make([]*entity.SupportTicket, 0, len(ms))
	for _, m := range ms {
		tickets = append(tickets, &entity.SupportTicket{
			ID:           m.ID,
			Description:  m.Description,
			State:        entity.SupportTicketState(m.State),
			UserID:       m.UserID,
			ModeratorIDs: moderators[m.ID],
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}

	return tickets, nil
}

func fromSupportTicketDomain(t *entity.SupportTicket) *model.SupportTicketModel {
	return &model.SupportTicketModel{
		ID:          t.ID,
		Description: t.Description,
		State:       string(t.State),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
