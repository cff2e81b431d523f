package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
)

func testEarning(referrerID uuid.UUID, amount string, claimed bool) *entities.ReferralEarning {
	return &entities.ReferralEarning{
		ReferrerUserID:   referrerID,
		RefereeWallet:    "0xReferee",
		Level:            1,
		Amount:           amount,
		Percentage:       500,
		InvestmentAmount: "1000.00",
		Claimed:          claimed,
		EarnedAt:         time.Now(),
	}
}

func TestReferralRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewReferralRepository(db)
	ctx := context.Background()
	referrerID := uuid.New()

	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "50.00", false)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "25.00", true)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(uuid.New(), "99.00", false)))

	earnings, total, err := repo.ListEarnings(ctx, referrerID, nil, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, earnings, 2)
	require.Equal(t, "0xreferee", earnings[0].RefereeWallet)

	claimed := true
	earnings, total, err = repo.ListEarnings(ctx, referrerID, &claimed, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, earnings, 1)
	require.True(t, earnings[0].Claimed)
}

func TestReferralRepository_Sums_PendingEqualsEarnedMinusClaimed(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewReferralRepository(db)
	ctx := context.Background()
	referrerID := uuid.New()

	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "120.50", false)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "79.50", false)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "300.00", true)))

	earned, err := repo.SumEarned(ctx, referrerID)
	require.NoError(t, err)
	claimed, err := repo.SumClaimed(ctx, referrerID)
	require.NoError(t, err)
	pending, err := repo.SumPending(ctx, referrerID)
	require.NoError(t, err)

	earnedD := decimal.RequireFromString(earned)
	claimedD := decimal.RequireFromString(claimed)
	pendingD := decimal.RequireFromString(pending)

	require.True(t, pendingD.Equal(decimal.NewFromInt(200)), "pending=%s", pending)
	require.True(t, claimedD.Equal(decimal.NewFromInt(300)), "claimed=%s", claimed)
	require.True(t, earnedD.Equal(claimedD.Add(pendingD)), "earned=%s", earned)
}

func TestReferralRepository_MarkAllClaimed(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewReferralRepository(db)
	ctx := context.Background()
	referrerID := uuid.New()

	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "100.00", false)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "50.00", false)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(referrerID, "25.00", true)))

	updated, err := repo.MarkAllClaimed(ctx, referrerID, "0xPayoutTx")
	require.NoError(t, err)
	require.Equal(t, int64(2), updated)

	pending, err := repo.SumPending(ctx, referrerID)
	require.NoError(t, err)
	require.Equal(t, "0", pending)

	unclaimed := false
	earnings, _, err := repo.ListEarnings(ctx, referrerID, &unclaimed, 0, 10)
	require.NoError(t, err)
	require.Empty(t, earnings)

	claimed := true
	earnings, _, err = repo.ListEarnings(ctx, referrerID, &claimed, 0, 10)
	require.NoError(t, err)
	require.Len(t, earnings, 3)

	// repeat claim touches nothing
	updated, err = repo.MarkAllClaimed(ctx, referrerID, "0xOtherTx")
	require.NoError(t, err)
	require.Zero(t, updated)
}

func TestReferralRepository_TeamStats_Upsert(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewReferralRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.GetTeamStats(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	stats := &entities.TeamStats{
		UserID:        userID,
		WalletAddress: "0xTeamLead",
		TotalTeamSize: 3,
		Level1Count:   2,
		Level2Count:   1,
		ActiveMembers: 2,
	}
	require.NoError(t, repo.UpsertTeamStats(ctx, stats))

	got, err := repo.GetTeamStats(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 3, got.TotalTeamSize)
	require.Equal(t, "0xteamlead", got.WalletAddress)

	stats.TotalTeamSize = 5
	stats.InactiveMembers = 1
	require.NoError(t, repo.UpsertTeamStats(ctx, stats))

	got, err = repo.GetTeamStats(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 5, got.TotalTeamSize)
	require.Equal(t, 1, got.InactiveMembers)
}

func TestReferralRepository_PlatformSums(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewReferralRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateEarning(ctx, testEarning(uuid.New(), "100", true)))
	require.NoError(t, repo.CreateEarning(ctx, testEarning(uuid.New(), "40", false)))

	earned, err := repo.SumEarnedAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "140", earned)

	claimed, err := repo.SumClaimedAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "100", claimed)
}

func TestActivityLogRepository(t *testing.T) {
	db := newTestDB(t)
	createReferralTables(t, db)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Create(ctx, &entities.ActivityLog{
		UserID:        userID,
		WalletAddress: "0xUser",
		ActivityType:  entities.ActivityStake,
		Payload:       `{"totalAmount":"1000.00"}`,
	}))
	require.NoError(t, repo.Create(ctx, &entities.ActivityLog{
		UserID:        userID,
		WalletAddress: "0xUser",
		ActivityType:  entities.ActivityClaimReferral,
	}))

	logs, total, err := repo.ListByUser(ctx, userID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	require.Equal(t, "0xuser", logs[0].WalletAddress)
}
