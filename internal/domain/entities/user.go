package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered wallet account
type User struct {
	ID                    uuid.UUID   `json:"id"`
	WalletAddress         string      `json:"walletAddress"`
	CustomReferralCode    string      `json:"customReferralCode"`
	ReferrerWalletAddress null.String `json:"referrerWalletAddress,omitempty"`
	ReferrerCode          null.String `json:"referrerCode,omitempty"`
	FullName              string      `json:"fullName"`
	Email                 string      `json:"email"`
	MobileNumber          string      `json:"mobileNumber"`
	Address               string      `json:"address"`
	ZipCode               string      `json:"zipCode"`
	Country               string      `json:"country"`
	IsActive              bool        `json:"isActive"`
	EmailVerified         bool        `json:"emailVerified"`
	MobileVerified        bool        `json:"mobileVerified"`
	ProfileCompleted      bool        `json:"profileCompleted"`
	ReferrerSetOnchain    bool        `json:"referrerSetOnchain"`
	ReferrerSetTxHash     null.String `json:"referrerSetTxHash,omitempty"`
	LastLogin             null.Time   `json:"lastLogin,omitempty"`
	CreatedAt             time.Time   `json:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt"`
}

// ReferralLink is the shareable signup link minted for a user at registration
type ReferralLink struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	WalletAddress string    `json:"walletAddress"`
	ReferralCode  string    `json:"referralCode"`
	Link          string    `json:"link"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NonceInput requests an authentication challenge
type NonceInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// VerifyInput submits a signed challenge
type VerifyInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
}

// SignupInput registers a profile for a wallet
type SignupInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
	FullName      string `json:"fullName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	MobileNumber  string `json:"mobileNumber"`
	Address       string `json:"address"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	ReferrerCode  string `json:"referrerCode"`
}

// AuthResult is returned after a successful verify or signup
type AuthResult struct {
	Token            string `json:"token"`
	User             *User  `json:"user"`
	IsNewUser        bool   `json:"isNewUser"`
	ProfileCompleted bool   `json:"profileCompleted"`
}

// DashboardStats is the per-user rollup for the dashboard page
type DashboardStats struct {
	TotalInvested     string `json:"totalInvested"`
	ActiveInvestments int64  `json:"activeInvestments"`
	ReferralEarned    string `json:"referralEarned"`
	ReferralPending   string `json:"referralPending"`
	TeamSize          int    `json:"teamSize"`
}
