package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// BadgeKind is where a badge is displayed on a profile.
type BadgeKind string

const (
	BadgeKindProfile    BadgeKind = "profile"
	BadgeKindFrame      BadgeKind = "frame"
	BadgeKindBackground BadgeKind = "background"
	BadgeKindIcon       BadgeKind = "icon"
)

// ParseBadgeKind resolves a badge kind, ignoring case.
func ParseBadgeKind(s string) (BadgeKind, error) {
	kind := BadgeKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", domainerrors.ErrValidationFailed.WithDetailsf("unknown badge kind %q", s)
	}

	return kind, nil
}

// IsValid checks if the BadgeKind is a known value.
func (k BadgeKind) IsValid() bool {
	switch k {
	case BadgeKindProfile, BadgeKindFrame, BadgeKindBackground, BadgeKindIcon:
		return true
	default:
		return false
	}
}

// Badge is a cosmetic award, optionally owned by a user and earned through challenges.
type Badge struct {
	ID        uint64
	Kind      BadgeKind
	ImagePath string
	UserID    *uint64

	ChallengeIDs IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBadge builds a badge; the image path is required.
func NewBadge(kind BadgeKind, imagePath string) (*Badge, error) {
	if !kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetailsf("unknown badge kind %q", kind)
	}
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("badge image path is required")
	}

	return &Badge{Kind: kind, ImagePath: imagePath}, nil
}
