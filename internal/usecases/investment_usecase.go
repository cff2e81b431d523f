package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

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

// InvestmentUsecase handles the investment ledger
type InvestmentUsecase struct {
	investmentRepo repositories.InvestmentRepository
	userRepo       repositories.UserRepository
	referralRepo   repositories.ReferralRepository
	activityRepo   repositories.ActivityLogRepository
	referralCfg    config.ReferralConfig
}

// NewInvestmentUsecase creates a new investment usecase
func NewInvestmentUsecase(
	investmentRepo repositories.InvestmentRepository,
	userRepo repositories.UserRepository,
	referralRepo repositories.ReferralRepository,
	activityRepo repositories.ActivityLogRepository,
	referralCfg config.ReferralConfig,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		investmentRepo: investmentRepo,
		userRepo:       userRepo,
		referralRepo:   referralRepo,
		activityRepo:   activityRepo,
		referralCfg:    referralCfg,
	}
}

// RecordStake records a stake confirmed on-chain. Idempotent on the stake
// tx hash: recording the same transaction twice returns the stored row
// with created=false.
func (u *InvestmentUsecase) RecordStake(ctx context.Context, userID uuid.UUID, input *entities.RecordStakeInput) (*entities.InvestmentView, bool, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, false, domainerrors.NotFound("user not found")
		}
		return nil, false, domainerrors.InternalError(err)
	}

	if existing, err := u.investmentRepo.GetByStakeTxHash(ctx, input.StakeTxHash); err == nil {
		view, err := buildInvestmentView(existing, time.Now())
		if err != nil {
			return nil, false, domainerrors.InternalError(err)
		}
		return view, false, nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, domainerrors.InternalError(err)
	}

	total, err := decimal.NewFromString(input.TotalAmount)
	if err != nil || total.Sign() <= 0 {
		return nil, false, domainerrors.Unprocessable("VALIDATION_ERROR", "totalAmount must be a positive decimal")
	}
	if _, err := decimal.NewFromString(input.AmountPerOrder); err != nil {
		return nil, false, domainerrors.Unprocessable("VALIDATION_ERROR", "amountPerOrder must be a decimal")
	}

	stakeTime := time.Now()
	if input.StakeTimestamp > 0 {
		stakeTime = time.Unix(input.StakeTimestamp, 0)
	}

	investment := &entities.Investment{
		UserID:                 user.ID,
		WalletAddress:          user.WalletAddress,
		TokenAddress:           input.TokenAddress,
		TokenSymbol:            input.TokenSymbol,
		OrderCount:             input.OrderCount,
		AmountPerOrder:         input.AmountPerOrder,
		TotalAmount:            input.TotalAmount,
		LockedAPR:              input.APR,
		LockedMaturityDuration: input.MaturityDuration,
		StakeTimestamp:         stakeTime,
		MaturityTimestamp:      stakeTime.Add(time.Duration(input.MaturityDuration) * time.Second),
		EpochID:                input.EpochID,
		IsReinvestment:         input.IsReinvestment,
		Status:                 entities.InvestmentStatusActive,
		StakeTxHash:            input.StakeTxHash,
	}
	if input.OrderID != "" {
		investment.OrderID.SetValid(input.OrderID)
	}

	if err := u.investmentRepo.Create(ctx, investment); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// lost a race against a concurrent insert of the same tx
			existing, err := u.investmentRepo.GetByStakeTxHash(ctx, input.StakeTxHash)
			if err != nil {
				return nil, false, domainerrors.InternalError(err)
			}
			view, err := buildInvestmentView(existing, time.Now())
			if err != nil {
				return nil, false, domainerrors.InternalError(err)
			}
			return view, false, nil
		}
		return nil, false, domainerrors.InternalError(err)
	}

	u.logStakeActivity(ctx, user, investment)
	u.creditReferralChain(ctx, user, investment)

	view, err := buildInvestmentView(investment, time.Now())
	if err != nil {
		return nil, false, domainerrors.InternalError(err)
	}
	return view, true, nil
}

// ListInvestments lists a user's investments with derived fields. The
// status filter selects a bucket: active, completed, or everything.
func (u *InvestmentUsecase) ListInvestments(ctx context.Context, userID uuid.UUID, statusFilter string, offset, limit int) ([]*entities.InvestmentView, int64, error) {
	investments, total, err := u.investmentRepo.ListByUser(ctx, userID, entities.StatusBucket(statusFilter), offset, limit)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}

	now := time.Now()
	views := make([]*entities.InvestmentView, 0, len(investments))
	for _, inv := range investments {
		view, err := buildInvestmentView(inv, now)
		if err != nil {
			return nil, 0, domainerrors.InternalError(err)
		}
		views = append(views, view)
	}
	return views, total, nil
}

// TotalInvested sums a user's staked amount across all positions
func (u *InvestmentUsecase) TotalInvested(ctx context.Context, userID uuid.UUID) (string, error) {
	return u.investmentRepo.SumTotalByUser(ctx, userID)
}

// ActiveInvestmentCount counts positions still owed money
func (u *InvestmentUsecase) ActiveInvestmentCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return u.investmentRepo.CountActiveByUser(ctx, userID)
}

func (u *InvestmentUsecase) logStakeActivity(ctx context.Context, user *entities.User, investment *entities.Investment) {
	payload, _ := json.Marshal(map[string]interface{}{
		"totalAmount": investment.TotalAmount,
		"orderCount":  investment.OrderCount,
		"tokenSymbol": investment.TokenSymbol,
		"epochId":     investment.EpochID,
	})
	err := u.activityRepo.Create(ctx, &entities.ActivityLog{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		ActivityType:  entities.ActivityStake,
		Payload:       string(payload),
		TxHash:        null.StringFrom(investment.StakeTxHash),
	})
	if err != nil {
		logger.Warn(ctx, "failed to log stake activity", zap.Error(err))
	}
}

// creditReferralChain writes level 1..n commissions up the referrer chain.
// Commission failures are logged, never surfaced: the stake record is the
// source of truth and earnings can be reconciled.
func (u *InvestmentUsecase) creditReferralChain(ctx context.Context, staker *entities.User, investment *entities.Investment) {
	amount := decimal.RequireFromString(investment.TotalAmount)
	current := staker

	for level, bps := range u.referralCfg.LevelPercentages {
		if !current.ReferrerWalletAddress.Valid {
			return
		}

		referrer, err := u.userRepo.GetByWallet(ctx, current.ReferrerWalletAddress.String)
		if err != nil {
			logger.Warn(ctx, "referrer lookup failed",
				zap.String("wallet", current.ReferrerWalletAddress.String),
				zap.Error(err))
			return
		}

		commission := amount.
			Mul(decimal.NewFromInt(bps)).
			Div(decimal.NewFromInt(bpsDenominator)).
			Round(2)

		earning := &entities.ReferralEarning{
			ReferrerUserID:   referrer.ID,
			RefereeWallet:    staker.WalletAddress,
			Level:            level + 1,
			Amount:           earningAmountString(commission),
			Percentage:       bps,
			InvestmentAmount: investment.TotalAmount,
			EarnedAt:         investment.StakeTimestamp,
		}
		if err := u.referralRepo.CreateEarning(ctx, earning); err != nil {
			logger.Error(ctx, "failed to credit referral earning",
				zap.String("referrer", referrer.WalletAddress),
				zap.Int("level", level+1),
				zap.Error(err))
		}

		current = referrer
	}
}

func earningAmountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
