package keeper_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdktestutil "github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
	"github.com/tokenize-x/nft-staking/x/nftstaking/testutil"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

type mockedKeeper struct {
	ctx       sdk.Context
	keeper    keeper.Keeper
	authority string
	bank      *testutil.MockBankKeeper
	clock     *testutil.MockClock
}

func newMockedKeeper(t *testing.T) mockedKeeper {
	ctrl := gomock.NewController(t)
	key := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := sdktestutil.DefaultContext(key, storetypes.NewTransientStoreKey("transient_test"))

	bank := testutil.NewMockBankKeeper(ctrl)
	accounts := testutil.NewMockAccountKeeper(ctrl)
	accounts.EXPECT().GetModuleAddress(types.ModuleName).Return(authtypes.NewModuleAddress(types.ModuleName))
	clock := testutil.NewMockClock(ctrl)

	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	k := keeper.NewKeeper(
		runtime.NewKVStoreService(key),
		authority,
		accounts,
		bank,
		addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		clock,
	)
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return mockedKeeper{ctx: ctx, keeper: k, authority: authority, bank: bank, clock: clock}
}

func TestNewKeeper_RequiresModuleAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := testutil.NewMockAccountKeeper(ctrl)
	accounts.EXPECT().GetModuleAddress(types.ModuleName).Return(nil)

	require.Panics(t, func() {
		keeper.NewKeeper(
			runtime.NewKVStoreService(storetypes.NewKVStoreKey(types.StoreKey)),
			authtypes.NewModuleAddress(govtypes.ModuleName).String(),
			accounts,
			testutil.NewMockBankKeeper(ctrl),
			addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
			testutil.NewMockClock(ctrl),
		)
	})
}

func (m mockedKeeper) fixedClock(epoch, timestamp uint64) {
	m.clock.EXPECT().CurrentEpoch(gomock.Any()).Return(epoch, nil).AnyTimes()
	m.clock.EXPECT().CurrentTimestamp(gomock.Any()).Return(timestamp, nil).AnyTimes()
}

func TestStake_BankFailureLeavesNoPosition(t *testing.T) {
	requireT := require.New(t)
	m := newMockedKeeper(t)
	m.fixedClock(10, 864_000)
	user := newAddr()

	requireT.NoError(m.keeper.RegisterPool(m.ctx, m.authority, "genesis", types.ModuleTypeAll))
	requireT.NoError(m.keeper.SetBaseScore(m.ctx, m.authority, "genesis", types.ModuleTypeAll, sdkmath.NewInt(10)))

	staked := assets("genesis", 1, 2)
	m.bank.EXPECT().
		SendCoinsFromAccountToModule(gomock.Any(), user, types.ModuleName, gomock.Any()).
		Return(errors.Wrap(cosmoserrors.ErrInsufficientFunds, "0genesis/1 is smaller than 2genesis/1"))

	err := m.keeper.Stake(m.ctx, user, staked)
	requireT.ErrorIs(err, cosmoserrors.ErrInsufficientFunds)

	held, err := m.keeper.GetStakedAssets(m.ctx, user, "genesis")
	requireT.NoError(err)
	requireT.Empty(held)

	aggregated, err := m.keeper.GetAggregatedScore(m.ctx, types.ModuleTypeAll)
	requireT.NoError(err)
	requireT.True(aggregated.IsZero())
}

func TestStake_TransfersAssetsToModule(t *testing.T) {
	requireT := require.New(t)
	m := newMockedKeeper(t)
	m.fixedClock(10, 864_000)
	user := newAddr()

	requireT.NoError(m.keeper.RegisterPool(m.ctx, m.authority, "genesis", types.ModuleTypeAll))
	requireT.NoError(m.keeper.SetBaseScore(m.ctx, m.authority, "genesis", types.ModuleTypeAll, sdkmath.NewInt(10)))

	staked := assets("genesis", 1, 2, 3, 1)
	var transferred sdk.Coins
	m.bank.EXPECT().
		SendCoinsFromAccountToModule(gomock.Any(), user, types.ModuleName, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sdk.AccAddress, _ string, amt sdk.Coins) error {
			transferred = amt
			return nil
		})

	requireT.NoError(m.keeper.Stake(m.ctx, user, staked))
	requireT.Equal(types.AssetsToCoins(staked).String(), transferred.String())

	score, err := m.keeper.GetUserScore(m.ctx, types.ModuleTypeAll, user)
	requireT.NoError(err)
	requireT.EqualValues(30, score.Int64())
}

func TestDistributeReward_ClockFailure(t *testing.T) {
	requireT := require.New(t)
	m := newMockedKeeper(t)
	clockErr := errors.New("clock unavailable")
	m.clock.EXPECT().CurrentEpoch(gomock.Any()).Return(uint64(0), clockErr)

	requireT.NoError(m.keeper.RegisterRewardToken(m.ctx, m.authority, rewardDenom, types.ModuleTypeAll))

	// the bank mock has no expectations, any transfer fails the test
	err := m.keeper.DistributeReward(m.ctx, m.authority, types.ModuleTypeAll, sdk.NewInt64Coin(rewardDenom, 100))
	requireT.ErrorIs(err, clockErr)
}

func TestClaimRewards_PayoutFailureKeepsPending(t *testing.T) {
	requireT := require.New(t)
	m := newMockedKeeper(t)
	m.fixedClock(10, 864_000)
	user := newAddr()

	requireT.NoError(m.keeper.RegisterPool(m.ctx, m.authority, "genesis", types.ModuleTypeAll))
	requireT.NoError(m.keeper.SetBaseScore(m.ctx, m.authority, "genesis", types.ModuleTypeAll, sdkmath.NewInt(10)))
	requireT.NoError(m.keeper.RegisterRewardToken(m.ctx, m.authority, rewardDenom, types.ModuleTypeAll))

	m.bank.EXPECT().SendCoinsFromAccountToModule(gomock.Any(), gomock.Any(), types.ModuleName, gomock.Any()).
		Return(nil).Times(2)
	requireT.NoError(m.keeper.Stake(m.ctx, user, assets("genesis", 1, 1)))
	requireT.NoError(m.keeper.DistributeReward(m.ctx, m.authority, types.ModuleTypeAll, sdk.NewInt64Coin(rewardDenom, 50)))

	m.bank.EXPECT().
		SendCoinsFromModuleToAccount(gomock.Any(), types.ModuleName, user, gomock.Any()).
		DoAndReturn(func(context.Context, string, sdk.AccAddress, sdk.Coins) error {
			return cosmoserrors.ErrInsufficientFunds
		})
	_, err := m.keeper.ClaimRewards(m.ctx, user)
	requireT.ErrorIs(err, cosmoserrors.ErrInsufficientFunds)

	pending, err := m.keeper.GetPendingRewards(m.ctx, user)
	requireT.NoError(err)
	requireT.EqualValues(50, pending.AmountOf(rewardDenom).Int64())
}
