package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
)

// ReportUserInput files a complaint against another user.
type ReportUserInput struct {
	ReporterID       uint64 `validate:"required"`
	ReportedUsername string `validate:"required"`
	Reason           string `validate:"required"`
}

// ModerateReportInput moves a report to a new state.
type ModerateReportInput struct {
	ModeratorID uint64             `validate:"required"`
	ReportID    uint64             `validate:"required"`
	State       entity.ReportState `validate:"required"`
}

// ModifyReportInput replaces the mutable report fields.
type ModifyReportInput struct {
	ReportID         uint64             `validate:"required"`
	ReportedUsername string             `validate:"required"`
	Reason           string             `validate:"required"`
	Date             time.Time          `validate:"required"`
	State            entity.ReportState `validate:"required"`
}

// RaiseSupportTicketInput opens a support ticket for a user.
type RaiseSupportTicketInput struct {
	UserID      uint64 `validate:"required"`
	Description string
}

// ModifySupportTicketInput replaces the mutable ticket fields.
type ModifySupportTicketInput struct {
	TicketID    uint64                    `validate:"required"`
	Description string                    `validate:"required"`
	State       entity.SupportTicketState `validate:"required"`
}

// ModerationUsecase defines report and support ticket operations.
type ModerationUsecase interface {
	// ReportUser files an unsolved report dated now and returns its id.
	// Users cannot report themselves.
	ReportUser(ctx context.Context, input ReportUserInput) (uint64, error)

	// ModerateReport updates the report state and records the moderator as
	// one of its handlers.
	ModerateReport(ctx context.Context, input ModerateReportInput) error

	// ModifyReport edits a report. The date cannot be in the future and a
	// solved report cannot go back to unsolved.
	ModifyReport(ctx context.Context, input ModifyReportInput) error

	// DeleteReport removes a report that is not solved yet.
	DeleteReport(ctx context.Context, reportID uint64) error

	ListReportsByState(ctx context.Context, state entity.ReportState) ([]*entity.Report, error)

	// RaiseSupportTicket opens an unsolved ticket and returns its id.
	RaiseSupportTicket(ctx context.Context, input RaiseSupportTicketInput) (uint64, error)

	// ModifySupportTicket edits a ticket that is not solved yet.
	ModifySupportTicket(ctx context.Context, input ModifySupportTicketInput) error

	// DeleteSupportTicket removes a solved ticket.
	DeleteSupportTicket(ctx context.Context, ticketID uint64) error

	ListSupportTicketsByState(ctx context.Context, state entity.SupportTicketState) ([]*entity.SupportTicket, error)

	// HandleSupportTicket records the moderator as one of the ticket handlers.
	HandleSupportTicket(ctx context.Context, moderatorID, ticketID uint64) error
}
