package models

import (
	"time"

	"github.com/google/uuid"
)

type Investment struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID `gorm:"type:uuid;index;not null"`
	WalletAddress          string    `gorm:"type:varchar(64);index;not null"`
	OrderID                *string   `gorm:"type:varchar(100)"`
	TokenAddress           string    `gorm:"type:varchar(64);not null"`
	TokenSymbol            string    `gorm:"type:varchar(20);not null"`
	OrderCount             int       `gorm:"not null"`
	AmountPerOrder         string    `gorm:"type:decimal(36,18);not null"`
	TotalAmount            string    `gorm:"type:decimal(36,18);not null"`
	LockedAPR              int64     `gorm:"not null"`
	LockedMaturityDuration int64     `gorm:"not null"`
	StakeTimestamp         time.Time `gorm:"not null"`
	MaturityTimestamp      time.Time `gorm:"index;not null"`
	EpochID                int64
	PaidOrderCount         int    `gorm:"default:0"`
	FullyPaid              bool   `gorm:"default:false"`
	IsReinvestment         bool   `gorm:"default:false"`
	Status                 string `gorm:"type:varchar(20);index;not null"`
	StakeTxHash            string `gorm:"type:varchar(80);uniqueIndex;not null"`
	LastPayoutTxHash       *string `gorm:"type:varchar(80)"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
