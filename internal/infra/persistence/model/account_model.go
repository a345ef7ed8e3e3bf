// Package model holds the gorm persistence models. Relationship collections
// are not mapped as gorm associations: many-to-many links live in the join
// models of links_model.go and one-to-many links are a nullable column on
// the child row.
package model

import "time"

// UserModel mirrors the 'users' table. Vendors share the table and are
// told apart by Kind.
type UserModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Kind         string `gorm:"type:varchar(16);not null;index"`
	Username     string `gorm:"type:varchar(100);not null;index:idx_users_username_lower,unique,expression:LOWER(username)"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string `gorm:"type:varchar(50)"`
	Nickname     string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ModeratorModel mirrors the 'moderators' table.
type ModeratorModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ModeratorModel) TableName() string {
	return "moderators"
}
