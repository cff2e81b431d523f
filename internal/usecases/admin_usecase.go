package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/domain/repositories"
	"liberty-staking.backend/internal/infrastructure/blockchain"
)

// AdminUsecase builds platform-wide aggregates for admin views
type AdminUsecase struct {
	userRepo       repositories.UserRepository
	investmentRepo repositories.InvestmentRepository
	referralRepo   repositories.ReferralRepository
	contract       *blockchain.StakingContract
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	investmentRepo repositories.InvestmentRepository,
	referralRepo repositories.ReferralRepository,
	contract *blockchain.StakingContract,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		referralRepo:   referralRepo,
		contract:       contract,
	}
}

// Dashboard aggregates user, investment, and referral totals
func (u *AdminUsecase) Dashboard(ctx context.Context) (*entities.AdminDashboard, error) {
	totalUsers, err := u.userRepo.CountAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	activeUsers, err := u.userRepo.CountActive(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	recentSignups, err := u.userRepo.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	totalInvestments, err := u.investmentRepo.CountAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	totalInvested, err := u.investmentRepo.SumTotalAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	activeInvested, err := u.investmentRepo.SumActiveAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	earned, err := u.referralRepo.SumEarnedAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	claimed, err := u.referralRepo.SumClaimedAll(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	pending := decimal.RequireFromString(earned).Sub(decimal.RequireFromString(claimed))

	return &entities.AdminDashboard{
		TotalUsers:       totalUsers,
		ActiveUsers:      activeUsers,
		RecentSignups:    recentSignups,
		TotalInvestments: totalInvestments,
		TotalInvested:    totalInvested,
		ActiveInvested:   activeInvested,
		ReferralEarned:   earned,
		ReferralClaimed:  claimed,
		ReferralPending:  pending.String(),
	}, nil
}

// MaturedOrders lists investments past maturity and not yet fully paid,
// oldest maturity first, with how much is still owed
func (u *AdminUsecase) MaturedOrders(ctx context.Context, offset, limit int) ([]*entities.MaturedOrder, int64, error) {
	now := time.Now()
	investments, total, err := u.investmentRepo.ListMatured(ctx, now, offset, limit)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}

	orders := make([]*entities.MaturedOrder, 0, len(investments))
	for _, inv := range investments {
		payout, err := ExpectedPayout(inv.TotalAmount, inv.LockedAPR, inv.LockedMaturityDuration)
		if err != nil {
			return nil, 0, domainerrors.InternalError(err)
		}

		order := &entities.MaturedOrder{
			Investment:   *inv,
			DaysSinceDue: int64(now.Sub(inv.MaturityTimestamp).Hours() / 24),
			ExpectedOwed: payout,
			RemainingDue: RemainingOrders(inv.OrderCount, inv.PaidOrderCount),
		}
		if user, err := u.userRepo.GetByWallet(ctx, inv.WalletAddress); err == nil {
			order.FullName = user.FullName
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}

// Users lists users with an optional search term
func (u *AdminUsecase) Users(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	users, total, err := u.userRepo.List(ctx, search, offset, limit)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return users, total, nil
}

// Treasury reads the contract's admin wallets and their accrued fees
func (u *AdminUsecase) Treasury(ctx context.Context) (*entities.TreasuryView, error) {
	primary, secondary, err := u.contract.AdminWallets(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	primaryFees, secondaryFees, err := u.contract.AccumulatedAdminFees(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.TreasuryView{
		PrimaryAdminWallet:   primary,
		SecondaryAdminWallet: secondary,
		PrimaryAdminFees:     primaryFees,
		SecondaryAdminFees:   secondaryFees,
	}, nil
}
