package models

import (
	"time"

	"github.com/google/uuid"
)

type ReferralEarning struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerUserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	RefereeWallet    string    `gorm:"type:varchar(64);not null"`
	Level            int       `gorm:"not null"`
	Amount           string    `gorm:"type:decimal(36,18);not null"`
	Percentage       int64     `gorm:"not null"`
	InvestmentAmount string    `gorm:"type:decimal(36,18);not null"`
	Claimed          bool      `gorm:"index;default:false"`
	EarnedAt         time.Time `gorm:"not null"`
	TxHash           *string   `gorm:"type:varchar(80)"`
	CreatedAt        time.Time
}

type TeamStats struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	TotalTeamSize   int       `gorm:"default:0"`
	Level1Count     int       `gorm:"default:0"`
	Level2Count     int       `gorm:"default:0"`
	Level3Count     int       `gorm:"default:0"`
	ActiveMembers   int       `gorm:"default:0"`
	InactiveMembers int       `gorm:"default:0"`
	UpdatedAt       time.Time
}

type ActivityLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	WalletAddress string    `gorm:"type:varchar(64);not null"`
	ActivityType  string    `gorm:"type:varchar(32);not null"`
	Payload       string    `gorm:"type:text"`
	TxHash        *string   `gorm:"type:varchar(80)"`
	CreatedAt     time.Time
}
