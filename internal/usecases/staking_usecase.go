package usecases

import (
	"context"

	"github.com/shopspring/decimal"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/infrastructure/blockchain"
)

// APRView reports the contract APR both raw and as a percent string
type APRView struct {
	BasisPoints int64  `json:"basisPoints"`
	Percent     string `json:"percent"`
}

// StakingUsecase exposes public read views over the staking contract
type StakingUsecase struct {
	contract *blockchain.StakingContract
}

// NewStakingUsecase creates a new staking usecase
func NewStakingUsecase(contract *blockchain.StakingContract) *StakingUsecase {
	return &StakingUsecase{contract: contract}
}

// CurrentEpoch reads the active epoch with order availability
func (u *StakingUsecase) CurrentEpoch(ctx context.Context) (*blockchain.EpochInfo, error) {
	epoch, err := u.contract.CurrentEpoch(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return epoch, nil
}

// CurrentAPR reads the contract APR
func (u *StakingUsecase) CurrentAPR(ctx context.Context) (*APRView, error) {
	bps, err := u.contract.CurrentAPR(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &APRView{
		BasisPoints: bps,
		Percent:     decimal.NewFromInt(bps).Div(decimal.NewFromInt(100)).String(),
	}, nil
}

// PlatformStats reads platform totals from the contract
func (u *StakingUsecase) PlatformStats(ctx context.Context) (*blockchain.PlatformStats, error) {
	stats, err := u.contract.PlatformStats(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return stats, nil
}
