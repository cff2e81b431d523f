package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReferralEarning is a commission earned by a referrer when a referee stakes.
// Percentage is basis points of the investment amount.
type ReferralEarning struct {
	ID               uuid.UUID   `json:"id"`
	ReferrerUserID   uuid.UUID   `json:"referrerUserId"`
	RefereeWallet    string      `json:"refereeWallet"`
	Level            int         `json:"level"`
	Amount           string      `json:"amount"`
	Percentage       int64       `json:"percentage"`
	InvestmentAmount string      `json:"investmentAmount"`
	Claimed          bool        `json:"claimed"`
	EarnedAt         time.Time   `json:"earnedAt"`
	TxHash           null.String `json:"txHash,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// TeamStats is the denormalized referral-tree rollup for a user
type TeamStats struct {
	UserID          uuid.UUID `json:"userId"`
	WalletAddress   string    `json:"walletAddress"`
	TotalTeamSize   int       `json:"totalTeamSize"`
	Level1Count     int       `json:"level1Count"`
	Level2Count     int       `json:"level2Count"`
	Level3Count     int       `json:"level3Count"`
	ActiveMembers   int       `json:"activeMembers"`
	InactiveMembers int       `json:"inactiveMembers"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReferralStats combines earnings aggregates with the team rollup
type ReferralStats struct {
	TotalEarned  string     `json:"totalEarned"`
	TotalClaimed string     `json:"totalClaimed"`
	Pending      string     `json:"pending"`
	MinClaim     string     `json:"minClaim"`
	CanClaim     bool       `json:"canClaim"`
	Team         *TeamStats `json:"team"`
}

// ClaimAuthorization is the server-side approval for a referral claim
type ClaimAuthorization struct {
	Amount   string `json:"amount"`
	MinClaim string `json:"minClaim"`
}

// ConfirmClaimInput records the payout transaction for an authorized claim
type ConfirmClaimInput struct {
	TxHash string `json:"txHash" binding:"required"`
}

// TeamMember is a direct referee with investment rollups
type TeamMember struct {
	WalletAddress     string    `json:"walletAddress"`
	FullName          string    `json:"fullName"`
	JoinedAt          time.Time `json:"joinedAt"`
	TotalInvested     string    `json:"totalInvested"`
	ActiveInvestments int64     `json:"activeInvestments"`
}

// ActivityLog records a user-visible platform event
type ActivityLog struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"userId"`
	WalletAddress string      `json:"walletAddress"`
	ActivityType  string      `json:"activityType"`
	Payload       string      `json:"payload"`
	TxHash        null.String `json:"txHash,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Activity types
const (
	ActivitySignup        = "signup"
	ActivityStake         = "stake"
	ActivityClaimReferral = "claim_referral"
)
