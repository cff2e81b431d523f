package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvestmentStatus represents the lifecycle state of a stake
type InvestmentStatus string

const (
	InvestmentStatusActive        InvestmentStatus = "active"
	InvestmentStatusMatured       InvestmentStatus = "matured"
	InvestmentStatusPartiallyPaid InvestmentStatus = "partially_paid"
	InvestmentStatusCompleted     InvestmentStatus = "completed"
	InvestmentStatusWithdrawn     InvestmentStatus = "withdrawn"
)

// StatusBucket maps a list filter to the statuses it covers.
// "active" covers positions still owed money, "completed" covers closed ones.
// Anything else means no status filter.
func StatusBucket(filter string) []InvestmentStatus {
	switch filter {
	case "active":
		return []InvestmentStatus{
			InvestmentStatusActive,
			InvestmentStatusMatured,
			InvestmentStatusPartiallyPaid,
		}
	case "completed":
		return []InvestmentStatus{
			InvestmentStatusCompleted,
			InvestmentStatusWithdrawn,
		}
	default:
		return nil
	}
}

// Investment represents a recorded stake. Monetary amounts are decimal
// strings; locked_apr is basis points and locked_maturity_duration is
// seconds, both frozen at stake time.
type Investment struct {
	ID                     uuid.UUID        `json:"id"`
	UserID                 uuid.UUID        `json:"userId"`
	WalletAddress          string           `json:"walletAddress"`
	OrderID                null.String      `json:"orderId,omitempty"`
	TokenAddress           string           `json:"tokenAddress"`
	TokenSymbol            string           `json:"tokenSymbol"`
	OrderCount             int              `json:"orderCount"`
	AmountPerOrder         string           `json:"amountPerOrder"`
	TotalAmount            string           `json:"totalAmount"`
	LockedAPR              int64            `json:"lockedApr"`
	LockedMaturityDuration int64            `json:"lockedMaturityDuration"`
	StakeTimestamp         time.Time        `json:"stakeTimestamp"`
	MaturityTimestamp      time.Time        `json:"maturityTimestamp"`
	EpochID                int64            `json:"epochId"`
	PaidOrderCount         int              `json:"paidOrderCount"`
	FullyPaid              bool             `json:"fullyPaid"`
	IsReinvestment         bool             `json:"isReinvestment"`
	Status                 InvestmentStatus `json:"status"`
	StakeTxHash            string           `json:"stakeTxHash"`
	LastPayoutTxHash       null.String      `json:"lastPayoutTxHash,omitempty"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// Countdown is the time remaining until maturity, decomposed for display
type Countdown struct {
	Days      int64 `json:"days"`
	Hours     int64 `json:"hours"`
	Minutes   int64 `json:"minutes"`
	Seconds   int64 `json:"seconds"`
	IsMatured bool  `json:"isMatured"`
}

// InvestmentView is an investment enriched with derived fields for the API
type InvestmentView struct {
	Investment
	ExpectedInterest string    `json:"expectedInterest"`
	ExpectedPayout   string    `json:"expectedPayout"`
	RemainingOrders  int       `json:"remainingOrders"`
	Countdown        Countdown `json:"countdown"`
}

// RecordStakeInput records a stake confirmed on-chain by the client
type RecordStakeInput struct {
	StakeTxHash      string `json:"stakeTxHash" binding:"required"`
	TokenAddress     string `json:"tokenAddress" binding:"required"`
	TokenSymbol      string `json:"tokenSymbol" binding:"required"`
	OrderCount       int    `json:"orderCount" binding:"required,min=1"`
	AmountPerOrder   string `json:"amountPerOrder" binding:"required"`
	TotalAmount      string `json:"totalAmount" binding:"required"`
	APR              int64  `json:"apr" binding:"required,min=1"`
	MaturityDuration int64  `json:"maturityDuration" binding:"required,min=1"`
	StakeTimestamp   int64  `json:"stakeTimestamp"`
	EpochID          int64  `json:"epochId"`
	OrderID          string `json:"orderId"`
	IsReinvestment   bool   `json:"isReinvestment"`
}

// MaturedOrder is the admin view of an investment past maturity and not
// yet fully paid out
type MaturedOrder struct {
	Investment
	FullName     string `json:"fullName"`
	DaysSinceDue int64  `json:"daysSinceDue"`
	ExpectedOwed string `json:"expectedOwed"`
	RemainingDue int    `json:"remainingDue"`
}
