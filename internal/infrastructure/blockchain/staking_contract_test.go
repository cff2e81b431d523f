package blockchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// fakeChain answers view calls by method name with pre-packed outputs
type fakeChain struct {
	t       *testing.T
	outputs map[string][]interface{}
	errs    map[string]error
}

func newFakeContract(t *testing.T, fake *fakeChain) *StakingContract {
	t.Helper()

	contract, err := NewStakingContract(nil, "0xStaking", 6)
	require.NoError(t, err)
	fake.t = t

	client := NewEVMClientWithCallView(big.NewInt(1), func(ctx context.Context, to string, data []byte) ([]byte, error) {
		method := fake.lookupMethod(contract, data)
		if err, ok := fake.errs[method.Name]; ok {
			return nil, err
		}
		values, ok := fake.outputs[method.Name]
		if !ok {
			return nil, fmt.Errorf("unexpected call %s", method.Name)
		}
		packed, err := method.Outputs.Pack(values...)
		require.NoError(t, err)
		return packed, nil
	})
	contract.client = client
	return contract
}

func (f *fakeChain) lookupMethod(contract *StakingContract, data []byte) *abi.Method {
	for _, a := range []abi.ABI{contract.stakingABI, contract.erc20ABI} {
		for name := range a.Methods {
			m := a.Methods[name]
			if bytes.Equal(m.ID, data[:4]) {
				return &m
			}
		}
	}
	f.t.Fatalf("unknown selector %x", data[:4])
	return nil
}

func TestStakingContract_CurrentEpoch(t *testing.T) {
	start := time.Now().Truncate(time.Second).UTC()
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"currentEpochId": {big.NewInt(5)},
		"epochs":         {big.NewInt(100), big.NewInt(1_000_000_000), big.NewInt(start.Unix()), true},
		"getConstants":   {big.NewInt(7000), big.NewInt(1_000_000)},
	}})

	epoch, err := contract.CurrentEpoch(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), epoch.EpochID)
	require.Equal(t, int64(100), epoch.TotalOrders)
	require.Equal(t, "1000", epoch.TotalStaked)
	require.Equal(t, start, epoch.StartTime)
	require.True(t, epoch.IsActive)
	require.Equal(t, int64(7000), epoch.MaxOrders)
	require.Equal(t, int64(6900), epoch.AvailableOrders)
}

func TestStakingContract_CurrentEpoch_ConstantsFallback(t *testing.T) {
	contract := newFakeContract(t, &fakeChain{
		outputs: map[string][]interface{}{
			"currentEpochId": {big.NewInt(1)},
			"epochs":         {big.NewInt(6400), big.NewInt(0), big.NewInt(0), true},
		},
		errs: map[string]error{"getConstants": errors.New("execution reverted")},
	})

	epoch, err := contract.CurrentEpoch(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(defaultMaxOrdersPerEpoch), epoch.MaxOrders)
	// oversubscribed epoch never reports negative availability
	require.Zero(t, epoch.AvailableOrders)
}

func TestStakingContract_CurrentAPR(t *testing.T) {
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"currentAPR": {big.NewInt(1200)},
	}})

	apr, err := contract.CurrentAPR(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1200), apr)
}

func TestStakingContract_PlatformStats(t *testing.T) {
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"getPlatformStats": {big.NewInt(1_234_500_000), big.NewInt(42), big.NewInt(210), big.NewInt(55_000_000)},
	}})

	stats, err := contract.PlatformStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1234.5", stats.TotalStaked)
	require.Equal(t, int64(42), stats.TotalUsers)
	require.Equal(t, int64(210), stats.TotalOrders)
	require.Equal(t, "55", stats.TotalPaidOut)
}

func TestStakingContract_ReferralInfo(t *testing.T) {
	referrer := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"getReferralInfo": {referrer, big.NewInt(3), big.NewInt(12_000_000)},
	}})

	info, err := contract.ReferralInfo(context.Background(), "0xBB")
	require.NoError(t, err)
	require.Equal(t, referrer.Hex(), info.Referrer)
	require.Equal(t, int64(3), info.ReferralCount)
	require.Equal(t, "12", info.TotalRewards)
}

func TestStakingContract_AdminFees(t *testing.T) {
	primary := common.HexToAddress("0x0000000000000000000000000000000000000001")
	secondary := common.HexToAddress("0x0000000000000000000000000000000000000002")
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"primaryAdminWallet":            {primary},
		"secondaryAdminWallet":          {secondary},
		"accumulatedPrimaryAdminFees":   {big.NewInt(9_000_000)},
		"accumulatedSecondaryAdminFees": {big.NewInt(1_500_000)},
	}})

	p, s, err := contract.AdminWallets(context.Background())
	require.NoError(t, err)
	require.Equal(t, primary.Hex(), p)
	require.Equal(t, secondary.Hex(), s)

	pFees, sFees, err := contract.AccumulatedAdminFees(context.Background())
	require.NoError(t, err)
	require.Equal(t, "9", pFees)
	require.Equal(t, "1.5", sFees)
}

func TestStakingContract_TokenReads(t *testing.T) {
	contract := newFakeContract(t, &fakeChain{outputs: map[string][]interface{}{
		"balanceOf": {big.NewInt(2_500_000)},
		"allowance": {big.NewInt(750_000)},
	}})
	ctx := context.Background()

	balance, err := contract.TokenBalance(ctx, "0xToken", "0xOwner")
	require.NoError(t, err)
	require.Equal(t, "2.5", balance)

	allowance, err := contract.TokenAllowance(ctx, "0xToken", "0xOwner", "0xSpender")
	require.NoError(t, err)
	require.Equal(t, "0.75", allowance)
}
