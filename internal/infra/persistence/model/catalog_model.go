package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// VideogameModel mirrors the 'videogames' table.
type VideogameModel struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoryID *uint64         `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (VideogameModel) TableName() string {
	return "videogames"
}

// BadgeModel mirrors the 'badges' table.
type BadgeModel struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	Kind      string  `gorm:"type:varchar(20);not null"`
	ImagePath string  `gorm:"type:varchar(500);not null"`
	UserID    *uint64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BadgeModel) TableName() string {
	return "badges"
}

// ChallengeModel mirrors the 'challenges' table.
type ChallengeModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChallengeModel) TableName() string {
	return "challenges"
}
