package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// ReportState is the lifecycle state of a report. Solved is terminal.
type ReportState string

const (
	ReportStateUnsolved ReportState = "unsolved"
	ReportStateSolved   ReportState = "solved"
)

// IsValid checks if the ReportState is a known value.
func (s ReportState) IsValid() bool {
	switch s {
	case ReportStateUnsolved, ReportStateSolved:
		return true
	default:
		return false
	}
}

// Report is a complaint filed by a user against another username.
type Report struct {
	ID               uint64
	ReportedUsername string
	Reason           string
	Date             time.Time
	State            ReportState
	UserID           *uint64 // reporting user

	ModeratorIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReport builds an unsolved report. The reason is required and the date
// cannot be after now.
func NewReport(reportedUsername, reason string, date, now time.Time) (*Report, error) {
	reportedUsername = strings.TrimSpace(reportedUsername)
	if reportedUsername == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("reported username is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("report reason is required")
	}
	if date.After(now) {
		return nil, domainerrors.ErrFutureDate.WithDetails(date.Format(time.RFC3339))
	}

	return &Report{
		ReportedUsername: reportedUsername,
		Reason:           reason,
		Date:             date,
		State:            ReportStateUnsolved,
	}, nil
}

// IsSolved reports whether the report reached its terminal state.
func (r *Report) IsSolved() bool {
	return r.State == ReportStateSolved
}

// TransitionTo moves the report to state. Leaving Solved is rejected.
func (r *Report) TransitionTo(state ReportState) error {
	if !state.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetailsf("unknown report state %q", state)
	}
	if r.IsSolved() && state != ReportStateSolved {
		return domainerrors.ErrReportSolved.WithDetailsf("report %d", r.ID)
	}
	r.State = state

	return nil
}

// Modify replaces the report fields under the same rules as NewReport, then
// moves it to state.
func (r *Report) Modify(reportedUsername, reason string, date time.Time, state ReportState, now time.Time) error {
	fields, err := NewReport(reportedUsername, reason, date, now)
	if err != nil {
		return err
	}
	if err := r.TransitionTo(state); err != nil {
		return err
	}
	r.ReportedUsername = fields.ReportedUsername
	r.Reason = fields.Reason
	r.Date = fields.Date

	return nil
}

// CanDelete rejects deletion of solved reports.
func (r *Report) CanDelete() error {
	if r.IsSolved() {
		return domainerrors.ErrReportSolved.WithDetailsf("report %d", r.ID)
	}

	return nil
}
