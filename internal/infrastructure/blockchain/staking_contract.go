package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const stakingABIJSON = `[
	{"name":"currentEpochId","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"epochs","type":"function","stateMutability":"view","inputs":[{"name":"epochId","type":"uint256"}],"outputs":[{"name":"totalOrders","type":"uint256"},{"name":"totalStaked","type":"uint256"},{"name":"startTime","type":"uint256"},{"name":"isActive","type":"bool"}]},
	{"name":"getConstants","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"maxOrdersPerEpoch","type":"uint256"},{"name":"minStakeAmount","type":"uint256"}]},
	{"name":"currentAPR","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"maturityDuration","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"getPlatformStats","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"totalStaked","type":"uint256"},{"name":"totalUsers","type":"uint256"},{"name":"totalOrders","type":"uint256"},{"name":"totalPaidOut","type":"uint256"}]},
	{"name":"getReferralInfo","type":"function","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"referrer","type":"address"},{"name":"referralCount","type":"uint256"},{"name":"totalRewards","type":"uint256"}]},
	{"name":"primaryAdminWallet","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"name":"secondaryAdminWallet","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"name":"accumulatedPrimaryAdminFees","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"accumulatedSecondaryAdminFees","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABIJSON = `[
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

// defaultMaxOrdersPerEpoch is used when getConstants is unavailable on the
// deployed contract version
const defaultMaxOrdersPerEpoch = 6300

// EpochInfo describes the contract's current staking epoch
type EpochInfo struct {
	EpochID         int64     `json:"epochId"`
	TotalOrders     int64     `json:"totalOrders"`
	TotalStaked     string    `json:"totalStaked"`
	StartTime       time.Time `json:"startTime"`
	IsActive        bool      `json:"isActive"`
	MaxOrders       int64     `json:"maxOrders"`
	AvailableOrders int64     `json:"availableOrders"`
}

// PlatformStats mirrors the contract's getPlatformStats view
type PlatformStats struct {
	TotalStaked  string `json:"totalStaked"`
	TotalUsers   int64  `json:"totalUsers"`
	TotalOrders  int64  `json:"totalOrders"`
	TotalPaidOut string `json:"totalPaidOut"`
}

// ReferralInfo mirrors the contract's on-chain referral registry
type ReferralInfo struct {
	Referrer      string `json:"referrer"`
	ReferralCount int64  `json:"referralCount"`
	TotalRewards  string `json:"totalRewards"`
}

// StakingContract is a read-only facade over the staking contract and its
// stake token. Writes (stake, approve, claim) are signed in the user's
// wallet; the backend only reads.
type StakingContract struct {
	client        *EVMClient
	address       string
	tokenDecimals int32

	stakingABI abi.ABI
	erc20ABI   abi.ABI
}

// NewStakingContract creates the facade. tokenDecimals scales raw
// uint256 amounts to human decimal strings (6 for INRT/USDT).
func NewStakingContract(client *EVMClient, address string, tokenDecimals int32) (*StakingContract, error) {
	stakingABI, err := abi.JSON(strings.NewReader(stakingABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse staking abi: %w", err)
	}
	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	return &StakingContract{
		client:        client,
		address:       address,
		tokenDecimals: tokenDecimals,
		stakingABI:    stakingABI,
		erc20ABI:      erc20ABI,
	}, nil
}

// Address returns the contract address
func (s *StakingContract) Address() string {
	return s.address
}

// CurrentEpochID reads the active epoch id
func (s *StakingContract) CurrentEpochID(ctx context.Context) (int64, error) {
	values, err := s.call(ctx, "currentEpochId")
	if err != nil {
		return 0, err
	}
	return values[0].(*big.Int).Int64(), nil
}

// CurrentEpoch reads the active epoch with order availability
func (s *StakingContract) CurrentEpoch(ctx context.Context) (*EpochInfo, error) {
	epochID, err := s.CurrentEpochID(ctx)
	if err != nil {
		return nil, err
	}

	values, err := s.call(ctx, "epochs", big.NewInt(epochID))
	if err != nil {
		return nil, err
	}

	totalOrders := values[0].(*big.Int).Int64()
	maxOrders := s.maxOrdersPerEpoch(ctx)
	available := maxOrders - totalOrders
	if available < 0 {
		available = 0
	}

	return &EpochInfo{
		EpochID:         epochID,
		TotalOrders:     totalOrders,
		TotalStaked:     s.scaleAmount(values[1].(*big.Int)),
		StartTime:       time.Unix(values[2].(*big.Int).Int64(), 0).UTC(),
		IsActive:        values[3].(bool),
		MaxOrders:       maxOrders,
		AvailableOrders: available,
	}, nil
}

// CurrentAPR reads the contract APR in basis points
func (s *StakingContract) CurrentAPR(ctx context.Context) (int64, error) {
	values, err := s.call(ctx, "currentAPR")
	if err != nil {
		return 0, err
	}
	return values[0].(*big.Int).Int64(), nil
}

// MaturityDuration reads the lock duration in seconds
func (s *StakingContract) MaturityDuration(ctx context.Context) (int64, error) {
	values, err := s.call(ctx, "maturityDuration")
	if err != nil {
		return 0, err
	}
	return values[0].(*big.Int).Int64(), nil
}

// PlatformStats reads platform-wide totals from the contract
func (s *StakingContract) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	values, err := s.call(ctx, "getPlatformStats")
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalStaked:  s.scaleAmount(values[0].(*big.Int)),
		TotalUsers:   values[1].(*big.Int).Int64(),
		TotalOrders:  values[2].(*big.Int).Int64(),
		TotalPaidOut: s.scaleAmount(values[3].(*big.Int)),
	}, nil
}

// ReferralInfo reads the on-chain referral registry entry for a wallet
func (s *StakingContract) ReferralInfo(ctx context.Context, wallet string) (*ReferralInfo, error) {
	values, err := s.call(ctx, "getReferralInfo", common.HexToAddress(wallet))
	if err != nil {
		return nil, err
	}
	return &ReferralInfo{
		Referrer:      values[0].(common.Address).Hex(),
		ReferralCount: values[1].(*big.Int).Int64(),
		TotalRewards:  s.scaleAmount(values[2].(*big.Int)),
	}, nil
}

// AdminWallets reads the primary and secondary admin wallets
func (s *StakingContract) AdminWallets(ctx context.Context) (primary, secondary string, err error) {
	values, err := s.call(ctx, "primaryAdminWallet")
	if err != nil {
		return "", "", err
	}
	primary = values[0].(common.Address).Hex()

	values, err = s.call(ctx, "secondaryAdminWallet")
	if err != nil {
		return "", "", err
	}
	secondary = values[0].(common.Address).Hex()
	return primary, secondary, nil
}

// AccumulatedAdminFees reads the fee balances accrued for each admin wallet
func (s *StakingContract) AccumulatedAdminFees(ctx context.Context) (primary, secondary string, err error) {
	values, err := s.call(ctx, "accumulatedPrimaryAdminFees")
	if err != nil {
		return "", "", err
	}
	primary = s.scaleAmount(values[0].(*big.Int))

	values, err = s.call(ctx, "accumulatedSecondaryAdminFees")
	if err != nil {
		return "", "", err
	}
	secondary = s.scaleAmount(values[0].(*big.Int))
	return primary, secondary, nil
}

// TokenBalance reads an ERC-20 balance as a decimal string
func (s *StakingContract) TokenBalance(ctx context.Context, tokenAddress, owner string) (string, error) {
	data, err := s.erc20ABI.Pack("balanceOf", common.HexToAddress(owner))
	if err != nil {
		return "", err
	}
	raw, err := s.client.CallView(ctx, tokenAddress, data)
	if err != nil {
		return "", err
	}
	values, err := s.erc20ABI.Unpack("balanceOf", raw)
	if err != nil {
		return "", err
	}
	return s.scaleAmount(values[0].(*big.Int)), nil
}

// TokenAllowance reads an ERC-20 allowance as a decimal string
func (s *StakingContract) TokenAllowance(ctx context.Context, tokenAddress, owner, spender string) (string, error) {
	data, err := s.erc20ABI.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return "", err
	}
	raw, err := s.client.CallView(ctx, tokenAddress, data)
	if err != nil {
		return "", err
	}
	values, err := s.erc20ABI.Unpack("allowance", raw)
	if err != nil {
		return "", err
	}
	return s.scaleAmount(values[0].(*big.Int)), nil
}

func (s *StakingContract) maxOrdersPerEpoch(ctx context.Context) int64 {
	values, err := s.call(ctx, "getConstants")
	if err != nil {
		// older contract deployments lack getConstants
		return defaultMaxOrdersPerEpoch
	}
	return values[0].(*big.Int).Int64()
}

func (s *StakingContract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := s.stakingABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := s.client.CallView(ctx, s.address, data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := s.stakingABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func (s *StakingContract) scaleAmount(raw *big.Int) string {
	return decimal.NewFromBigInt(raw, -s.tokenDecimals).String()
}
