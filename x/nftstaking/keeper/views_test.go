package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

var intComparer = cmp.Comparer(func(a, b sdkmath.Int) bool {
	return a.Equal(b)
})

func TestGetUserStakingData(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)
	user := newAddr()

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	registerPool(t, env, "coding", types.ModuleTypeCodingDivisionSfts)
	setBaseScore(t, env, "bunnies", types.ModuleTypeAll, 10)
	setBaseScore(t, env, "bunnies", types.ModuleTypeXBunnies, 1)
	setBaseScore(t, env, "coding", types.ModuleTypeAll, 2)
	setBaseScore(t, env, "coding", types.ModuleTypeVestaXDAO, 3)
	requireT.NoError(env.Keeper.RegisterRewardToken(env.Ctx, env.Authority, rewardDenom, types.ModuleTypeAll))
	fundAuthority(t, env, 1_000)

	mintAndStake(t, env, user, assets("bunnies", 1, 2))
	mintAndStake(t, env, user, assets("coding", 4, 1, 5, 1))
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "coding", items(5, 1)))
	distribute(t, env, types.ModuleTypeAll, 220)

	data, err := env.Keeper.GetUserStakingData(env.Ctx, user)
	requireT.NoError(err)

	timestamp := uint64(env.Ctx.BlockTime().Unix())
	expected := types.UserStakingData{
		PendingRewards: data.PendingRewards,
		Deb:            sdkmath.NewInt(types.DebDenomination),
		Scores: []types.ModuleScore{
			{Module: types.ModuleTypeAll, Score: sdkmath.NewInt(22)},
			{Module: types.ModuleTypeXBunnies, Score: sdkmath.NewInt(2)},
			{Module: types.ModuleTypeVestaXDAO, Score: sdkmath.NewInt(3)},
		},
		Pools: []types.UserPoolData{
			{
				Collection: "bunnies",
				Module:     types.ModuleTypeXBunnies,
				Assets:     assets("bunnies", 1, 2),
				Scores: []types.ModuleScore{
					{Module: types.ModuleTypeAll, Score: sdkmath.NewInt(20)},
					{Module: types.ModuleTypeXBunnies, Score: sdkmath.NewInt(2)},
				},
			},
			{
				Collection: "coding",
				Module:     types.ModuleTypeCodingDivisionSfts,
				Assets:     assets("coding", 4, 1),
				Scores: []types.ModuleScore{
					{Module: types.ModuleTypeAll, Score: sdkmath.NewInt(2)},
					{Module: types.ModuleTypeCodingDivisionSfts, Score: sdkmath.ZeroInt()},
					{Module: types.ModuleTypeVestaXDAO, Score: sdkmath.NewInt(3)},
				},
			},
		},
		Unbondings: []types.UnbondingBatch{
			{
				Timestamp:   timestamp,
				ClaimableAt: timestamp + types.DefaultUnbondingTimePenalty,
				Assets:      assets("coding", 5, 1),
			},
		},
	}
	requireT.Empty(cmp.Diff(expected, data, intComparer))
	requireT.EqualValues(220, data.PendingRewards.AmountOf(rewardDenom).Int64())
}

func TestGetGeneralStakingData(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)

	data, err := env.Keeper.GetGeneralStakingData(env.Ctx)
	requireT.NoError(err)
	requireT.Empty(data)

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	setBaseScore(t, env, "bunnies", types.ModuleTypeAll, 10)
	setBaseScore(t, env, "bunnies", types.ModuleTypeXBunnies, 4)
	mintAndStake(t, env, newAddr(), assets("bunnies", 1, 1))
	mintAndStake(t, env, newAddr(), assets("bunnies", 2, 3))

	data, err = env.Keeper.GetGeneralStakingData(env.Ctx)
	requireT.NoError(err)
	requireT.Empty(cmp.Diff([]types.ModuleScore{
		{Module: types.ModuleTypeAll, Score: sdkmath.NewInt(40)},
		{Module: types.ModuleTypeXBunnies, Score: sdkmath.NewInt(16)},
	}, data, intComparer))
}
