package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	CustomReferralCode    string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	ReferrerWalletAddress *string   `gorm:"type:varchar(64);index"`
	ReferrerCode          *string   `gorm:"type:varchar(100)"`
	FullName              string    `gorm:"type:varchar(255);not null"`
	Email                 string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	MobileNumber          string    `gorm:"type:varchar(32)"`
	Address               string    `gorm:"type:varchar(500)"`
	ZipCode               string    `gorm:"type:varchar(20)"`
	Country               string    `gorm:"type:varchar(100)"`
	IsActive              bool      `gorm:"default:true"`
	EmailVerified         bool      `gorm:"default:false"`
	MobileVerified        bool      `gorm:"default:false"`
	ProfileCompleted      bool      `gorm:"default:false"`
	ReferrerSetOnchain    bool      `gorm:"default:false"`
	ReferrerSetTxHash     *string   `gorm:"type:varchar(80)"`
	LastLogin             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ReferralLink struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	WalletAddress string    `gorm:"type:varchar(64);not null"`
	ReferralCode  string    `gorm:"type:varchar(100);not null"`
	Link          string    `gorm:"type:varchar(500);not null"`
	CreatedAt     time.Time
}
