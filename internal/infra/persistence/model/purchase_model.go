package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. TransactionID is set once the
// order has been paid.
type OrderModel struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	UserID        uint64          `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TransactionID *uint64         `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// TransactionModel mirrors the 'transactions' table.
type TransactionModel struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	Date          time.Time       `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null;index"`
	Kind          string          `gorm:"type:varchar(20);not null"`
	UserID        uint64          `gorm:"not null;index"`
	OrderID       *uint64         `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
