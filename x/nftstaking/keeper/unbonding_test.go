package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/testutil"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func TestStartUnbonding_Validation(t *testing.T) {
	testCases := []struct {
		name       string
		collection string
		items      []types.NonceQuantity
		expectErr  error
	}{
		{
			name:       "no_position",
			collection: "bloodshed",
			items:      items(1, 1),
			expectErr:  types.ErrUnbondingFailed,
		},
		{
			name:       "unregistered_collection",
			collection: "unknown",
			items:      items(1, 1),
			expectErr:  types.ErrInvalidCollection,
		},
		{
			name:       "empty_items",
			collection: "bunnies",
			items:      nil,
			expectErr:  types.ErrInvalidInput,
		},
		{
			name:       "duplicate_nonce",
			collection: "bunnies",
			items:      items(1, 1, 1, 1),
			expectErr:  types.ErrDuplicateNonce,
		},
		{
			name:       "zero_quantity",
			collection: "bunnies",
			items:      items(1, 0),
			expectErr:  types.ErrInvalidInput,
		},
		{
			name:       "nonce_not_staked",
			collection: "bunnies",
			items:      items(9, 1),
			expectErr:  types.ErrUnbondingFailed,
		},
		{
			name:       "partial",
			collection: "bunnies",
			items:      items(1, 1, 2, 2),
		},
		{
			name:       "everything",
			collection: "bunnies",
			items:      items(1, 2, 2, 2),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			env := newEnv(t)
			user := newAddr()

			registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
			registerPool(t, env, "bloodshed", types.ModuleTypeBloodshed)
			setBaseScore(t, env, "bunnies", types.ModuleTypeAll, 10)
			mintAndStake(t, env, user, assets("bunnies", 1, 2, 2, 2))

			err := env.Keeper.StartUnbonding(env.Ctx, user, tc.collection, tc.items)
			if tc.expectErr != nil {
				requireT.ErrorIs(err, tc.expectErr)
				requireT.EqualValues(40, userScore(t, env, types.ModuleTypeAll, user))
				return
			}
			requireT.NoError(err)

			var unbonded int64
			for _, item := range tc.items {
				unbonded += item.Quantity.Int64()
			}
			requireT.EqualValues(10*(4-unbonded), userScore(t, env, types.ModuleTypeAll, user))
			requireT.EqualValues(10*(4-unbonded), aggregatedScore(t, env, types.ModuleTypeAll))
			requireInvariants(t, env)
		})
	}
}

func TestUnbonding_CooldownAndClaim(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)
	user := newAddr()
	penalty := time.Duration(types.DefaultUnbondingTimePenalty) * time.Second

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	setBaseScore(t, env, "bunnies", types.ModuleTypeAll, 10)
	mintAndStake(t, env, user, assets("bunnies", 1, 3))

	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1)))
	env.Advance(time.Hour)
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1)))

	_, err := env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.ErrorIs(err, types.ErrNothingToClaim)

	env.Advance(penalty - time.Hour - time.Second)
	_, err = env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.ErrorIs(err, types.ErrNothingToClaim)

	env.Advance(time.Second)
	claimed, err := env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.NoError(err)
	requireT.Equal(types.AssetsToCoins(assets("bunnies", 1, 1)).String(), claimed.String())

	batches, err := env.Keeper.GetUnbondingBatches(env.Ctx, user)
	requireT.NoError(err)
	requireT.Len(batches, 1)

	env.Advance(time.Hour)
	claimed, err = env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.NoError(err)
	requireT.Equal(types.AssetsToCoins(assets("bunnies", 1, 1)).String(), claimed.String())

	balance, err := env.Bank.Balance(env.Ctx, user)
	requireT.NoError(err)
	requireT.Equal(types.AssetsToCoins(assets("bunnies", 1, 2)).String(), balance.String())
	moduleBalance, err := env.Bank.ModuleBalance(env.Ctx, types.ModuleName)
	requireT.NoError(err)
	requireT.Equal(types.AssetsToCoins(assets("bunnies", 1, 1)).String(), moduleBalance.String())

	_, err = env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.ErrorIs(err, types.ErrNothingToClaim)
}

func TestUnbonding_SameTimestampMerges(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)
	user := newAddr()

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	registerPool(t, env, "bloodshed", types.ModuleTypeBloodshed)
	mintAndStake(t, env, user, assets("bunnies", 1, 3, 2, 1))
	mintAndStake(t, env, user, assets("bloodshed", 5, 1))

	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1)))
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1, 2, 1)))
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bloodshed", items(5, 1)))

	batches, err := env.Keeper.GetUnbondingBatches(env.Ctx, user)
	requireT.NoError(err)
	requireT.Len(batches, 1)

	timestamp := uint64(testutil.GenesisTime.Unix())
	requireT.Equal(timestamp, batches[0].Timestamp)
	requireT.Equal(timestamp+types.DefaultUnbondingTimePenalty, batches[0].ClaimableAt)
	requireT.Equal(
		types.AssetsToCoins(append(assets("bunnies", 1, 2, 2, 1), assets("bloodshed", 5, 1)...)).String(),
		types.AssetsToCoins(batches[0].Assets).String(),
	)
}

func TestUnbonding_StakeWhileUnbonding(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)
	user := newAddr()

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	setBaseScore(t, env, "bunnies", types.ModuleTypeAll, 10)
	mintAndStake(t, env, user, assets("bunnies", 1, 1))
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1)))
	requireT.Zero(userScore(t, env, types.ModuleTypeAll, user))

	mintAndStake(t, env, user, assets("bunnies", 1, 2))
	requireT.EqualValues(20, userScore(t, env, types.ModuleTypeAll, user))

	batches, err := env.Keeper.GetUnbondingBatches(env.Ctx, user)
	requireT.NoError(err)
	requireT.Len(batches, 1)
	requireInvariants(t, env)
}

func TestUnbonding_PenaltyFromParams(t *testing.T) {
	requireT := require.New(t)
	env := newEnv(t)
	user := newAddr()

	params := types.DefaultParams()
	params.UnbondingTimePenalty = 60
	requireT.NoError(env.Keeper.UpdateParams(env.Ctx, env.Authority, params))

	registerPool(t, env, "bunnies", types.ModuleTypeXBunnies)
	mintAndStake(t, env, user, assets("bunnies", 1, 1))
	requireT.NoError(env.Keeper.StartUnbonding(env.Ctx, user, "bunnies", items(1, 1)))

	env.Advance(time.Minute)
	claimed, err := env.Keeper.ClaimUnbonded(env.Ctx, user)
	requireT.NoError(err)
	requireT.Equal(types.AssetsToCoins(assets("bunnies", 1, 1)).String(), claimed.String())
}
