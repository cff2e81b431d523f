package usecases

import (
	"time"

	"github.com/shopspring/decimal"
	"liberty-staking.backend/internal/domain/entities"
)

const (
	secondsPerYear = 31536000
	bpsDenominator = 10000
)

// ExpectedInterest computes the simple interest owed at maturity:
// amount x apr/10000 x duration/secondsPerYear, rounded half-up to two
// decimals. APR is basis points, duration is seconds.
func ExpectedInterest(totalAmount string, aprBps, durationSeconds int64) (string, error) {
	amount, err := decimal.NewFromString(totalAmount)
	if err != nil {
		return "", err
	}

	interest := amount.
		Mul(decimal.NewFromInt(aprBps)).
		Div(decimal.NewFromInt(bpsDenominator)).
		Mul(decimal.NewFromInt(durationSeconds)).
		Div(decimal.NewFromInt(secondsPerYear))

	return interest.Round(2).StringFixed(2), nil
}

// ExpectedPayout is principal plus rounded interest, two decimals
func ExpectedPayout(totalAmount string, aprBps, durationSeconds int64) (string, error) {
	interest, err := ExpectedInterest(totalAmount, aprBps, durationSeconds)
	if err != nil {
		return "", err
	}
	amount, err := decimal.NewFromString(totalAmount)
	if err != nil {
		return "", err
	}
	return amount.Add(decimal.RequireFromString(interest)).StringFixed(2), nil
}

// RemainingOrders is how many payout orders are still owed
func RemainingOrders(orderCount, paidOrderCount int) int {
	remaining := orderCount - paidOrderCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CountdownUntil decomposes the time left until maturity. A matured
// position reports all zeros with IsMatured set.
func CountdownUntil(maturity, now time.Time) entities.Countdown {
	remaining := maturity.Sub(now)
	if remaining <= 0 {
		return entities.Countdown{IsMatured: true}
	}

	total := int64(remaining.Seconds())
	return entities.Countdown{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// buildInvestmentView enriches a stored investment with its derived fields
func buildInvestmentView(inv *entities.Investment, now time.Time) (*entities.InvestmentView, error) {
	interest, err := ExpectedInterest(inv.TotalAmount, inv.LockedAPR, inv.LockedMaturityDuration)
	if err != nil {
		return nil, err
	}
	payout, err := ExpectedPayout(inv.TotalAmount, inv.LockedAPR, inv.LockedMaturityDuration)
	if err != nil {
		return nil, err
	}

	return &entities.InvestmentView{
		Investment:       *inv,
		ExpectedInterest: interest,
		ExpectedPayout:   payout,
		RemainingOrders:  RemainingOrders(inv.OrderCount, inv.PaidOrderCount),
		Countdown:        CountdownUntil(inv.MaturityTimestamp, now),
	}, nil
}
