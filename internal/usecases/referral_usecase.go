package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"liberty-staking.backend/internal/config"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/domain/repositories"
	"liberty-staking.backend/pkg/logger"
)

// ReferralUsecase handles referral earnings, claims, and team views
type ReferralUsecase struct {
	referralRepo   repositories.ReferralRepository
	userRepo       repositories.UserRepository
	investmentRepo repositories.InvestmentRepository
	activityRepo   repositories.ActivityLogRepository
	minClaim       decimal.Decimal
}

// NewReferralUsecase creates a new referral usecase
func NewReferralUsecase(
	referralRepo repositories.ReferralRepository,
	userRepo repositories.UserRepository,
	investmentRepo repositories.InvestmentRepository,
	activityRepo repositories.ActivityLogRepository,
	referralCfg config.ReferralConfig,
) *ReferralUsecase {
	minClaim, err := decimal.NewFromString(referralCfg.MinClaimAmount)
	if err != nil {
		minClaim = decimal.NewFromInt(500)
	}
	return &ReferralUsecase{
		referralRepo:   referralRepo,
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		activityRepo:   activityRepo,
		minClaim:       minClaim,
	}
}

// Stats combines the team rollup with earnings aggregates and claim
// eligibility
func (u *ReferralUsecase) Stats(ctx context.Context, userID uuid.UUID) (*entities.ReferralStats, error) {
	earned, err := u.referralRepo.SumEarned(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	claimed, err := u.referralRepo.SumClaimed(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	pending, err := u.referralRepo.SumPending(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	team, err := u.referralRepo.GetTeamStats(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	pendingD := decimal.RequireFromString(pending)
	return &entities.ReferralStats{
		TotalEarned:  earned,
		TotalClaimed: claimed,
		Pending:      pending,
		MinClaim:     u.minClaim.String(),
		CanClaim:     pendingD.GreaterThanOrEqual(u.minClaim),
		Team:         team,
	}, nil
}

// ListEarnings lists earning rows with a tri-state claimed filter:
// "true", "false", or anything else for no filter
func (u *ReferralUsecase) ListEarnings(ctx context.Context, userID uuid.UUID, claimedFilter string, offset, limit int) ([]*entities.ReferralEarning, int64, error) {
	var claimed *bool
	switch claimedFilter {
	case "true":
		v := true
		claimed = &v
	case "false":
		v := false
		claimed = &v
	}

	earnings, total, err := u.referralRepo.ListEarnings(ctx, userID, claimed, offset, limit)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return earnings, total, nil
}

// AuthorizeClaim checks claim eligibility server-side and returns the
// claimable amount. The threshold lives here, not in the client.
func (u *ReferralUsecase) AuthorizeClaim(ctx context.Context, userID uuid.UUID) (*entities.ClaimAuthorization, error) {
	pending, err := u.referralRepo.SumPending(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	pendingD := decimal.RequireFromString(pending)
	if pendingD.Sign() <= 0 {
		return nil, domainerrors.Unprocessable("NOTHING_TO_CLAIM", "no unclaimed referral earnings")
	}
	if pendingD.LessThan(u.minClaim) {
		return nil, domainerrors.Unprocessable("BELOW_MIN_CLAIM",
			"pending earnings are below the minimum claim of "+u.minClaim.String())
	}

	return &entities.ClaimAuthorization{
		Amount:   pending,
		MinClaim: u.minClaim.String(),
	}, nil
}

// ConfirmClaim stamps all unclaimed earnings with the payout tx hash
// after the claim transaction confirms on-chain
func (u *ReferralUsecase) ConfirmClaim(ctx context.Context, userID uuid.UUID, txHash string) (int64, error) {
	updated, err := u.referralRepo.MarkAllClaimed(ctx, userID, txHash)
	if err != nil {
		return 0, domainerrors.InternalError(err)
	}
	if updated == 0 {
		return 0, domainerrors.Unprocessable("NOTHING_TO_CLAIM", "no unclaimed referral earnings")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err == nil {
		logErr := u.activityRepo.Create(ctx, &entities.ActivityLog{
			UserID:        user.ID,
			WalletAddress: user.WalletAddress,
			ActivityType:  entities.ActivityClaimReferral,
			TxHash:        null.StringFrom(txHash),
		})
		if logErr != nil {
			logger.Warn(ctx, "failed to log claim activity", zap.Error(logErr))
		}
	}

	return updated, nil
}

// Team lists the user's direct referees with their investment rollups
func (u *ReferralUsecase) Team(ctx context.Context, walletAddress string, offset, limit int) ([]*entities.TeamMember, int64, error) {
	referees, total, err := u.userRepo.ListDirectReferees(ctx, walletAddress, offset, limit)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	if len(referees) == 0 {
		return []*entities.TeamMember{}, total, nil
	}

	wallets := make([]string, 0, len(referees))
	for _, r := range referees {
		wallets = append(wallets, r.WalletAddress)
	}

	sums, err := u.investmentRepo.SumTotalByWallets(ctx, wallets)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	counts, err := u.investmentRepo.CountActiveByWallets(ctx, wallets)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}

	members := make([]*entities.TeamMember, 0, len(referees))
	for _, r := range referees {
		invested := sums[r.WalletAddress]
		if invested == "" {
			invested = "0"
		}
		members = append(members, &entities.TeamMember{
			WalletAddress:     r.WalletAddress,
			FullName:          r.FullName,
			JoinedAt:          r.CreatedAt,
			TotalInvested:     invested,
			ActiveInvestments: counts[r.WalletAddress],
		})
	}
	return members, total, nil
}
