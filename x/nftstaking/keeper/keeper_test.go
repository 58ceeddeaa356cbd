package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
	"github.com/tokenize-x/nft-staking/x/nftstaking/testutil"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

const rewardDenom = "ureward"

func newEnv(t *testing.T) *testutil.Env {
	t.Helper()
	env, err := testutil.NewEnv()
	require.NoError(t, err)
	return env
}

func newAddr() sdk.AccAddress {
	return sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address())
}

func registerPool(t *testing.T, env *testutil.Env, collection string, module types.ModuleType) {
	t.Helper()
	require.NoError(t, env.Keeper.RegisterPool(env.Ctx, env.Authority, collection, module))
}

func setBaseScore(t *testing.T, env *testutil.Env, collection string, track types.ModuleType, score int64) {
	t.Helper()
	require.NoError(t, env.Keeper.SetBaseScore(env.Ctx, env.Authority, collection, track, sdkmath.NewInt(score)))
}

func assets(collection string, nonceQuantities ...int64) []types.AssetAmount {
	return lo.Map(lo.Chunk(nonceQuantities, 2), func(pair []int64, _ int) types.AssetAmount {
		return types.NewAssetAmount(collection, uint64(pair[0]), sdkmath.NewInt(pair[1]))
	})
}

func items(nonceQuantities ...int64) []types.NonceQuantity {
	return lo.Map(lo.Chunk(nonceQuantities, 2), func(pair []int64, _ int) types.NonceQuantity {
		return types.NonceQuantity{Nonce: uint64(pair[0]), Quantity: sdkmath.NewInt(pair[1])}
	})
}

func mintAndStake(t *testing.T, env *testutil.Env, user sdk.AccAddress, staked []types.AssetAmount) {
	t.Helper()
	require.NoError(t, env.Bank.Mint(env.Ctx, user, types.AssetsToCoins(staked)))
	require.NoError(t, env.Keeper.Stake(env.Ctx, user, staked))
}

func fundAuthority(t *testing.T, env *testutil.Env, amount int64) {
	t.Helper()
	authority, err := sdk.AccAddressFromBech32(env.Authority)
	require.NoError(t, err)
	require.NoError(t, env.Bank.Mint(env.Ctx, authority, sdk.NewCoins(sdk.NewInt64Coin(rewardDenom, amount))))
}

func userScore(t *testing.T, env *testutil.Env, module types.ModuleType, user sdk.AccAddress) int64 {
	t.Helper()
	score, err := env.Keeper.GetUserScore(env.Ctx, module, user)
	require.NoError(t, err)
	return score.Int64()
}

func rawScore(t *testing.T, env *testutil.Env, module types.ModuleType, user sdk.AccAddress) int64 {
	t.Helper()
	score, err := env.Keeper.GetRawUserScore(env.Ctx, module, user)
	require.NoError(t, err)
	return score.Int64()
}

func aggregatedScore(t *testing.T, env *testutil.Env, module types.ModuleType) int64 {
	t.Helper()
	score, err := env.Keeper.GetAggregatedScore(env.Ctx, module)
	require.NoError(t, err)
	return score.Int64()
}

func requireInvariants(t *testing.T, env *testutil.Env) {
	t.Helper()
	for _, invariant := range []sdk.Invariant{
		keeper.AggregatedScoreInvariant(env.Keeper),
		keeper.RawScoreInvariant(env.Keeper),
	} {
		msg, broken := invariant(env.Ctx)
		require.False(t, broken, msg)
	}
}
