package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// SupportTicketState is the lifecycle state of a support ticket. Solved is terminal.
type SupportTicketState string

const (
	SupportTicketStateUnsolved SupportTicketState = "unsolved"
	SupportTicketStateSolved   SupportTicketState = "solved"
)

// IsValid checks if the SupportTicketState is a known value.
func (s SupportTicketState) IsValid() bool {
	switch s {
	case SupportTicketStateUnsolved, SupportTicketStateSolved:
		return true
	default:
		return false
	}
}

// SupportTicket is a help request raised by a user.
type SupportTicket struct {
	ID          uint64
	Description string
	State       SupportTicketState
	UserID      *uint64

	ModeratorIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSupportTicket builds an unsolved ticket; the description is required.
func NewSupportTicket(description string) (*SupportTicket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("support ticket description is required")
	}

	return &SupportTicket{
		Description: description,
		State:       SupportTicketStateUnsolved,
	}, nil
}

// IsSolved reports whether the ticket reached its terminal state.
func (t *SupportTicket) IsSolved() bool {
	return t.State == SupportTicketStateSolved
}

// Modify replaces description and state. Solved tickets are frozen.
func (t *SupportTicket) Modify(description string, state SupportTicketState) error {
	if t.IsSolved() {
		return domainerrors.ErrSupportTicketSolved.WithDetailsf("support ticket %d", t.ID)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return domainerrors.ErrValidationFailed.WithDetails("support ticket description is required")
	}
	if !state.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetailsf("unknown support ticket state %q", state)
	}
	t.Description = description
	t.State = state

	return nil
}

// CanDelete only allows deleting solved tickets.
func (t *SupportTicket) CanDelete() error {
	if !t.IsSolved() {
		return domainerrors.ErrSupportTicketUnsolved.WithDetailsf("support ticket %d", t.ID)
	}

	return nil
}
