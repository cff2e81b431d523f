package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/domain/repositories"
)

// UserProfile is a user with their referral link attached
type UserProfile struct {
	User         *entities.User         `json:"user"`
	ReferralLink *entities.ReferralLink `json:"referralLink,omitempty"`
}

// UserUsecase handles profile and dashboard reads
type UserUsecase struct {
	userRepo       repositories.UserRepository
	investmentRepo repositories.InvestmentRepository
	referralRepo   repositories.ReferralRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	investmentRepo repositories.InvestmentRepository,
	referralRepo repositories.ReferralRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		referralRepo:   referralRepo,
	}
}

// Profile returns the user's profile with their referral link
func (u *UserUsecase) Profile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	profile := &UserProfile{User: user}
	if link, err := u.userRepo.GetReferralLinkByUserID(ctx, userID); err == nil {
		profile.ReferralLink = link
	}
	return profile, nil
}

// DashboardStats builds the per-user rollup for the dashboard page
func (u *UserUsecase) DashboardStats(ctx context.Context, userID uuid.UUID) (*entities.DashboardStats, error) {
	invested, err := u.investmentRepo.SumTotalByUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	activeCount, err := u.investmentRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	earned, err := u.referralRepo.SumEarned(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	pending, err := u.referralRepo.SumPending(ctx, userID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	teamSize := 0
	if team, err := u.referralRepo.GetTeamStats(ctx, userID); err == nil {
		teamSize = team.TotalTeamSize
	}

	return &entities.DashboardStats{
		TotalInvested:     invested,
		ActiveInvestments: activeCount,
		ReferralEarned:    earned,
		ReferralPending:   pending,
		TeamSize:          teamSize,
	}, nil
}
