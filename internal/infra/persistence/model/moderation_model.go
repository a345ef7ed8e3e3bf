package model

import "time"

// ReportModel mirrors the 'reports' table. UserID is the reporting user.
type ReportModel struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	ReportedUsername string    `gorm:"type:varchar(100);not null"`
	Reason           string    `gorm:"type:text;not null"`
	Date             time.Time `gorm:"not null"`
	State            string    `gorm:"type:varchar(20);not null;index"`
	UserID           *uint64   `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}

// SupportTicketModel mirrors the 'support_tickets' table.
type SupportTicketModel struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Description string  `gorm:"type:text;not null"`
	State       string  `gorm:"type:varchar(20);not null"`
	UserID      *uint64 `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupportTicketModel) TableName() string {
	return "support_tickets"
}
