package config

import "github.com/shopspring/decimal"

// RulesConfig defines the business thresholds and markers. Zero values fall
// back to the defaults below.
type RulesConfig struct {
	// TransactionDeleteCap blocks deletion of transactions whose total is above it.
	TransactionDeleteCap decimal.Decimal `json:"transactionDeleteCap" yaml:"transactionDeleteCap"`

	// VideogameDeleteCap blocks deletion of videogames priced above it.
	VideogameDeleteCap decimal.Decimal `json:"videogameDeleteCap" yaml:"videogameDeleteCap"`

	// AdminResetCode authorizes moderator password resets.
	AdminResetCode string `json:"adminResetCode" yaml:"adminResetCode"`

	// SuspensionMarker prefixes the email of a suspended vendor.
	SuspensionMarker string `json:"suspensionMarker" yaml:"suspensionMarker"`

	// AdminEmailSuffix marks user accounts that cannot be deleted.
	AdminEmailSuffix string `json:"adminEmailSuffix" yaml:"adminEmailSuffix"`

	// SupportAccountMarker marks vendor accounts that cannot be deleted.
	SupportAccountMarker string `json:"supportAccountMarker" yaml:"supportAccountMarker"`

	UserPasswordMinLength      int `json:"userPasswordMinLength" yaml:"userPasswordMinLength"`
	ModeratorPasswordMinLength int `json:"moderatorPasswordMinLength" yaml:"moderatorPasswordMinLength"`
	TicketDescriptionMinLength int `json:"ticketDescriptionMinLength" yaml:"ticketDescriptionMinLength"`
}

// DefaultRules returns the rule set used when nothing is configured.
func DefaultRules() *RulesConfig {
	return &RulesConfig{
		TransactionDeleteCap:       decimal.NewFromInt(10000),
		VideogameDeleteCap:         decimal.NewFromInt(200),
		AdminResetCode:             "ADMIN2025",
		SuspensionMarker:           "SUSPENDIDO_",
		AdminEmailSuffix:           "@admin.com",
		SupportAccountMarker:       "soporte",
		UserPasswordMinLength:      6,
		ModeratorPasswordMinLength: 8,
		TicketDescriptionMinLength: 10,
	}
}

// WithDefaults returns a copy of r where every unset field takes its default.
// A nil receiver yields DefaultRules.
func (r *RulesConfig) WithDefaults() *RulesConfig {
	def := DefaultRules()
	if r == nil {
		return def
	}

	out := *r
	if out.TransactionDeleteCap.IsZero() {
		out.TransactionDeleteCap = def.TransactionDeleteCap
	}
	if out.VideogameDeleteCap.IsZero() {
		out.VideogameDeleteCap = def.VideogameDeleteCap
	}
	if out.AdminResetCode == "" {
		out.AdminResetCode = def.AdminResetCode
	}
	if out.SuspensionMarker == "" {
		out.SuspensionMarker = def.SuspensionMarker
	}
	if out.AdminEmailSuffix == "" {
		out.AdminEmailSuffix = def.AdminEmailSuffix
	}
	if out.SupportAccountMarker == "" {
		out.SupportAccountMarker = def.SupportAccountMarker
	}
	if out.UserPasswordMinLength <= 0 {
		out.UserPasswordMinLength = def.UserPasswordMinLength
	}
	if out.ModeratorPasswordMinLength <= 0 {
		out.ModeratorPasswordMinLength = def.ModeratorPasswordMinLength
	}
	if out.TicketDescriptionMinLength <= 0 {
		out.TicketDescriptionMinLength = def.TicketDescriptionMinLength
	}

	return &out
}
