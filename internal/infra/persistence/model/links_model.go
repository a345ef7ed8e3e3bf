package model

// UserVideogameModel links a user to a videogame it purchased.
type UserVideogameModel struct {
	UserID      uint64 `gorm:"primaryKey;autoIncrement:false"`
	VideogameID uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (UserVideogameModel) TableName() string {
	return "user_videogames"
}

// VendorVideogameModel links a vendor to a videogame it published.
type VendorVideogameModel struct {
	VendorID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	VideogameID uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (VendorVideogameModel) TableName() string {
	return "vendor_videogames"
}

// OrderVideogameModel links an order to the videogames it contains.
type OrderVideogameModel struct {
	OrderID     uint64 `gorm:"primaryKey;autoIncrement:false"`
	VideogameID uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (OrderVideogameModel) TableName() string {
	return "order_videogames"
}

// ChallengeVideogameModel links a challenge to a videogame.
type ChallengeVideogameModel struct {
	ChallengeID uint64 `gorm:"primaryKey;autoIncrement:false"`
	VideogameID uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (ChallengeVideogameModel) TableName() string {
	return "challenge_videogames"
}

// ChallengeBadgeModel links a challenge to a badge it awards.
type ChallengeBadgeModel struct {
	ChallengeID uint64 `gorm:"primaryKey;autoIncrement:false"`
	BadgeID     uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (ChallengeBadgeModel) TableName() string {
	return "challenge_badges"
}

// ModeratorReportModel links a moderator to a report it handles.
type ModeratorReportModel struct {
	ModeratorID uint64 `gorm:"primaryKey;autoIncrement:false"`
	ReportID    uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (ModeratorReportModel) TableName() string {
	return "moderator_reports"
}

// ModeratorSupportTicketModel links a moderator to a support ticket it handles.
type ModeratorSupportTicketModel struct {
	ModeratorID     uint64 `gorm:"primaryKey;autoIncrement:false"`
	SupportTicketID uint64 `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName explicitly sets the table name for GORM.
func (ModeratorSupportTicketModel) TableName() string {
	return "moderator_support_tickets"
}

// All returns every model managed by the schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&ModeratorModel{},
		&CategoryModel{},
		&VideogameModel{},
		&OrderModel{},
		&TransactionModel{},
		&ReportModel{},
		&SupportTicketModel{},
		&BadgeModel{},
		&ChallengeModel{},
		&UserVideogameModel{},
		&VendorVideogameModel{},
		&OrderVideogameModel{},
		&ChallengeVideogameModel{},
		&ChallengeBadgeModel{},
		&ModeratorReportModel{},
		&ModeratorSupportTicketModel{},
	}
}
