package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"
	"marketplace/internal/usecase"
)

// moderationService implements the ModerationUsecase interface.
type moderationService struct {
	orchestrator
}

// NewModerationService is the constructor for moderationService.
func NewModerationService(params ServiceParams) usecase.ModerationUsecase {
	return &moderationService{orchestrator: newOrchestrator(params)}
}

func (srv *moderationService) ReportUser(ctx context.Context, input usecase.ReportUserInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "ReportUser",
		slog.Uint64("reporterID", input.ReporterID),
		slog.String("reportedUsername", input.ReportedUsername))

	id, err := srv.reportUser(ctx, input)

	return id, srv.finish(logger, "ReportUser", err)
}

func (srv *moderationService) reportUser(ctx context.Context, input usecase.ReportUserInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}

	now := srv.now()
	report, err := entity.NewReport(input.ReportedUsername, input.Reason, now, now)
	if err != nil {
		return 0, err
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		reporter, err := repos.UserRepo().FindByID(ctx, input.ReporterID)
		if err != nil {
			return err
		}
		if strings.EqualFold(reporter.Username, report.ReportedUsername) {
			return domainerrors.ErrSelfReport.WithDetails(reporter.Username)
		}

		reported, err := repos.UserRepo().FindByUsername(ctx, report.ReportedUsername)
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrReportedUserNotFound.WithDetails(report.ReportedUsername)
		}
		if err != nil {
			return err
		}
		if reported.ID == reporter.ID {
			return domainerrors.ErrSelfReport.WithDetails(reporter.Username)
		}

		if err := repos.ReportRepo().Create(ctx, report); err != nil {
			return err
		}
		entity.LinkUserReport(reporter, report)

		return repos.ReportRepo().Update(ctx, report)
	})
	if err != nil {
		return 0, err
	}

	return report.ID, nil
}

func (srv *moderationService) ModerateReport(ctx context.Context, input usecase.ModerateReportInput) error {
	ctx, logger := srv.start(ctx, "ModerateReport",
		slog.Uint64("moderatorID", input.ModeratorID),
		slog.Uint64("reportID", input.ReportID),
		slog.String("state", string(input.State)))

	err := srv.moderateReport(ctx, input)

	return srv.finish(logger, "ModerateReport", err)
}

func (srv *moderationService) moderateReport(ctx context.Context, input usecase.ModerateReportInput) error {
	if err := srv.check(input); err != nil {
		return err
	}
	if !input.State.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetailsf("unknown report state %q", input.State)
	}

	return srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		moderator, err := repos.ModeratorRepo().FindByID(ctx, input.ModeratorID)
		if err != nil {
			return err
		}
		report, err := repos.ReportRepo().FindByID(ctx, input.ReportID)
		if err != nil {
			return err
		}

		if err := report.TransitionTo(input.State); err != nil {
			return err
		}
		if entity.LinkModeratorReport(moderator, report) {
			if err := repos.ModeratorRepo().Update(ctx, moderator); err != nil {
				return err
			}
		}

		return repos.ReportRepo().Update(ctx, report)
	})
}

func (srv *moderationService) ModifyReport(ctx context.Context, input usecase.ModifyReportInput) error {
	ctx, logger := srv.start(ctx, "ModifyReport",
		slog.Uint64("reportID", input.ReportID),
		slog.String("state", string(input.State)))

	err := srv.modifyReport(ctx, input)

	return srv.finish(logger, "ModifyReport", err)
}

func (srv *moderationService) modifyReport(ctx context.Context, input usecase.ModifyReportInput) error {
	if err := srv.check(input); err != nil {
		return err
	}

	return srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		report, err := repos.ReportRepo().FindByID(ctx, input.ReportID)
		if err != nil {
			return err
		}
		if err := report.Modify(input.ReportedUsername, input.Reason, input.Date, input.State, srv.now()); err != nil {
			return err
		}

		return repos.ReportRepo().Update(ctx, report)
	})
}

func (srv *moderationService) DeleteReport(ctx context.Context, reportID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteReport", slog.Uint64("reportID", reportID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		report, err := repos.ReportRepo().FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		if err := report.CanDelete(); err != nil {
			return err
		}

		return repos.ReportRepo().Delete(ctx, report)
	})

	return srv.finish(logger, "DeleteReport", err)
}

func (srv *moderationService) ListReportsByState(ctx context.Context, state entity.ReportState) ([]*entity.Report, error) {
	if !state.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetailsf("unknown report state %q", state)
	}

	return srv.uow.Repositories().ReportRepo().FindByState(ctx, state)
}

func (srv *moderationService) RaiseSupportTicket(ctx context.Context, input usecase.RaiseSupportTicketInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "RaiseSupportTicket", slog.Uint64("userID", input.UserID))

	id, err := srv.raiseSupportTicket(ctx, input)

	return id, srv.finish(logger, "RaiseSupportTicket", err)
}

func (srv *moderationService) raiseSupportTicket(ctx context.Context, input usecase.RaiseSupportTicketInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	if err := srv.checkDescription(input.Description); err != nil {
		return 0, err
	}

	ticket, err := entity.NewSupportTicket(input.Description)
	if err != nil {
		return 0, err
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if err := repos.SupportTicketRepo().Create(ctx, ticket); err != nil {
			return err
		}
		entity.LinkUserSupportTicket(user, ticket)

		return repos.SupportTicketRepo().Update(ctx, ticket)
	})
	if err != nil {
		return 0, err
	}

	return ticket.ID, nil
}

func (srv *moderationService) ModifySupportTicket(ctx context.Context, input usecase.ModifySupportTicketInput) error {
	ctx, logger := srv.start(ctx, "ModifySupportTicket", slog.Uint64("ticketID", input.TicketID))

	err := srv.modifySupportTicket(ctx, input)

	return srv.finish(logger, "ModifySupportTicket", err)
}

func (srv *moderationService) modifySupportTicket(ctx context.Context, input usecase.ModifySupportTicketInput) error {
	if err := srv.check(input); err != nil {
		return err
	}

	return srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		ticket, err := repos.SupportTicketRepo().FindByID(ctx, input.TicketID)
		if err != nil {
			return err
		}
		if err := ticket.Modify(input.Description, input.State); err != nil {
			return err
		}

		return repos.SupportTicketRepo().Update(ctx, ticket)
	})
}

func (srv *moderationService) DeleteSupportTicket(ctx context.Context, ticketID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteSupportTicket", slog.Uint64("ticketID", ticketID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		ticket, err := repos.SupportTicketRepo().FindByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if err := ticket.CanDelete(); err != nil {
			return err
		}

		return repos.SupportTicketRepo().Delete(ctx, ticket)
	})

	return srv.finish(logger, "DeleteSupportTicket", err)
}

func (srv *moderationService) ListSupportTicketsByState(ctx context.Context, state entity.SupportTicketState) ([]*entity.SupportTicket, error) {
	if !state.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetailsf("unknown support ticket state %q", state)
	}

	return srv.uow.Repositories().SupportTicketRepo().FindByState(ctx, state)
}

func (srv *moderationService) HandleSupportTicket(ctx context.Context, moderatorID, ticketID uint64) error {
	ctx, logger := srv.start(ctx, "HandleSupportTicket",
		slog.Uint64("moderatorID", moderatorID),
		slog.Uint64("ticketID", ticketID))

	err := srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		moderator, err := repos.ModeratorRepo().FindByID(ctx, moderatorID)
		if err != nil {
			return err
		}
		ticket, err := repos.SupportTicketRepo().FindByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if !entity.LinkModeratorSupportTicket(moderator, ticket) {
			return nil
		}
		if err := repos.ModeratorRepo().Update(ctx, moderator); err != nil {
			return err
		}

		return repos.SupportTicketRepo().Update(ctx, ticket)
	})

	return srv.finish(logger, "HandleSupportTicket", err)
}

// checkDescription counts the characters left after trimming.
func (srv *moderationService) checkDescription(description string) error {
	minLength := srv.rules.TicketDescriptionMinLength
	if utf8.RuneCountInString(strings.TrimSpace(description)) < minLength {
		return domainerrors.ErrValidationFailed.WithDetailsf("support ticket description needs at least %d characters", minLength)
	}

	return nil
}
