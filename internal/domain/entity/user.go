// Package entity contains the core business objects of the marketplace,
// each representing a unique, identifiable concept within the domain.
// Relationships are held as adjacency collections of identifiers rather
// than object references; see links.go for the helpers that keep both
// sides of a relationship in step.
package entity

import (
	"strings"
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

// AccountKind discriminates plain users from vendors sharing the same storage.
type AccountKind string

const (
	// AccountKindUser is a regular marketplace user.
	AccountKindUser AccountKind = "user"
	// AccountKindVendor is a user that can publish videogames.
	AccountKindVendor AccountKind = "vendor"
)

// User is an end user account of the marketplace.
type User struct {
	ID           uint64
	Kind         AccountKind
	Username     string
	Email        string
	Phone        string
	Nickname     string
	PasswordHash string

	ReportIDs         IDs // reports filed by this user
	SupportTicketIDs  IDs
	OrderIDs          IDs
	TransactionIDs    IDs
	OwnedVideogameIDs IDs // purchased videogames
	BadgeIDs          IDs

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user after checking the local field rules.
// The email is trimmed and lower-cased.
func NewUser(username, email, phone, nickname string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is required")
	}

	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{
		Kind:     AccountKindUser,
		Username: username,
		Email:    email,
		Phone:    phone,
		Nickname: nickname,
	}, nil
}

// IsVendor reports whether the account is a vendor.
func (u *User) IsVendor() bool {
	return u.Kind == AccountKindVendor
}

// Vendor is a user that publishes videogames. The base account fields are
// embedded; only the published catalogue is vendor specific.
type Vendor struct {
	User

	PublishedVideogameIDs IDs
}

// NewVendor builds a vendor with the same field rules as NewUser.
func NewVendor(username, email, phone, nickname string) (*Vendor, error) {
	user, err := NewUser(username, email, phone, nickname)
	if err != nil {
		return nil, err
	}
	user.Kind = AccountKindVendor

	return &Vendor{User: *user}, nil
}

// NormalizeEmail trims and lower-cases an email, rejecting values without an '@'.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", domainerrors.ErrInvalidEmail.WithDetailsf("%q", email)
	}

	return email, nil
}
