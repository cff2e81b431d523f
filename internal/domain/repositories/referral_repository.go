package repositories

import (
	"context"

	"github.com/google/uuid"
	"liberty-staking.backend/internal/domain/entities"
)

// ReferralRepository defines referral earnings and team stats operations
type ReferralRepository interface {
	CreateEarning(ctx context.Context, earning *entities.ReferralEarning) error
	// ListEarnings filters by claimed state when claimed is non-nil
	ListEarnings(ctx context.Context, userID uuid.UUID, claimed *bool, offset, limit int) ([]*entities.ReferralEarning, int64, error)
	SumEarned(ctx context.Context, userID uuid.UUID) (string, error)
	SumClaimed(ctx context.Context, userID uuid.UUID) (string, error)
	SumPending(ctx context.Context, userID uuid.UUID) (string, error)
	// MarkAllClaimed stamps every unclaimed earning with the payout tx hash
	// and returns the number of rows updated
	MarkAllClaimed(ctx context.Context, userID uuid.UUID, txHash string) (int64, error)
	GetTeamStats(ctx context.Context, userID uuid.UUID) (*entities.TeamStats, error)
	UpsertTeamStats(ctx context.Context, stats *entities.TeamStats) error
	SumEarnedAll(ctx context.Context) (string, error)
	SumClaimedAll(ctx context.Context) (string, error)
}

// ActivityLogRepository records user-visible platform events
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entities.ActivityLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.ActivityLog, int64, error)
}
