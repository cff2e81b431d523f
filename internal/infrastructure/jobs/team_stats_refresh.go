package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liberty-staking.backend/internal/domain/entities"
	"liberty-staking.backend/pkg/logger"
)

const userBatchSize = 200

type teamStatsUserSource interface {
	List(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error)
	ListDirectReferees(ctx context.Context, walletAddress string, offset, limit int) ([]*entities.User, int64, error)
	ListRefereeWallets(ctx context.Context, walletAddresses []string) ([]*entities.User, error)
}

type teamStatsInvestmentSource interface {
	CountActiveByWallets(ctx context.Context, walletAddresses []string) (map[string]int64, error)
}

type teamStatsSink interface {
	UpsertTeamStats(ctx context.Context, stats *entities.TeamStats) error
}

// TeamStatsRefreshJob periodically recomputes the denormalized referral
// tree rollups so reads never walk the tree
type TeamStatsRefreshJob struct {
	users       teamStatsUserSource
	investments teamStatsInvestmentSource
	sink        teamStatsSink
	interval    time.Duration
	stop        chan struct{}
}

func NewTeamStatsRefreshJob(
	users teamStatsUserSource,
	investments teamStatsInvestmentSource,
	sink teamStatsSink,
	interval time.Duration,
) *TeamStatsRefreshJob {
	return &TeamStatsRefreshJob{
		users:       users,
		investments: investments,
		sink:        sink,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

func (j *TeamStatsRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting team stats refresh job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "team stats refresh job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "team stats refresh job stopped")
			return
		case <-ticker.C:
			j.refreshAll(ctx)
		}
	}
}

func (j *TeamStatsRefreshJob) Stop() {
	close(j.stop)
}

func (j *TeamStatsRefreshJob) refreshAll(ctx context.Context) {
	offset := 0
	refreshed := 0
	for {
		users, _, err := j.users.List(ctx, "", offset, userBatchSize)
		if err != nil {
			logger.Error(ctx, "team stats refresh aborted", zap.Error(err))
			return
		}
		if len(users) == 0 {
			break
		}

		for _, user := range users {
			if err := j.refreshUser(ctx, user); err != nil {
				logger.Warn(ctx, "team stats refresh failed for user",
					zap.String("wallet", user.WalletAddress),
					zap.Error(err))
				continue
			}
			refreshed++
		}

		if len(users) < userBatchSize {
			break
		}
		offset += userBatchSize
	}

	logger.Debug(ctx, "team stats refresh complete", zap.Int("users", refreshed))
}

// refreshUser rebuilds one user's rollup across three referral levels
func (j *TeamStatsRefreshJob) refreshUser(ctx context.Context, user *entities.User) error {
	level1, _, err := j.users.ListDirectReferees(ctx, user.WalletAddress, 0, 0)
	if err != nil {
		return err
	}

	level2, err := j.refereesOf(ctx, wallets(level1))
	if err != nil {
		return err
	}
	level3, err := j.refereesOf(ctx, wallets(level2))
	if err != nil {
		return err
	}

	team := append(append(wallets(level1), wallets(level2)...), wallets(level3)...)

	activeMembers := 0
	if len(team) > 0 {
		activeCounts, err := j.investments.CountActiveByWallets(ctx, team)
		if err != nil {
			return err
		}
		for _, count := range activeCounts {
			if count > 0 {
				activeMembers++
			}
		}
	}

	return j.sink.UpsertTeamStats(ctx, &entities.TeamStats{
		UserID:          user.ID,
		WalletAddress:   user.WalletAddress,
		TotalTeamSize:   len(team),
		Level1Count:     len(level1),
		Level2Count:     len(level2),
		Level3Count:     len(level3),
		ActiveMembers:   activeMembers,
		InactiveMembers: len(team) - activeMembers,
		UpdatedAt:       time.Now(),
	})
}

func (j *TeamStatsRefreshJob) refereesOf(ctx context.Context, parents []string) ([]*entities.User, error) {
	if len(parents) == 0 {
		return nil, nil
	}
	return j.users.ListRefereeWallets(ctx, parents)
}

func wallets(users []*entities.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.WalletAddress)
	}
	return out
}
