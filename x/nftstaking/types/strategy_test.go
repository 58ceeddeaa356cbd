package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	deterministicmap "github.com/tokenize-x/nft-staking/pkg/deterministic_map"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func inventory(nonceQuantities ...int64) *deterministicmap.Map[uint64, sdkmath.Int] {
	inv := deterministicmap.New[uint64, sdkmath.Int]()
	for i := 0; i+1 < len(nonceQuantities); i += 2 {
		inv.Set(uint64(nonceQuantities[i]), sdkmath.NewInt(nonceQuantities[i+1]))
	}
	return inv
}

func fullSetInventory(quantity int64) *deterministicmap.Map[uint64, sdkmath.Int] {
	inv := deterministicmap.New[uint64, sdkmath.Int]()
	for nonce := uint64(1); nonce <= types.CodingDivisionFullSetMaxNonce; nonce++ {
		inv.Set(nonce, sdkmath.NewInt(quantity))
	}
	return inv
}

func TestStrategy_RawScore(t *testing.T) {
	cfg := types.NewPoolConfig()
	cfg.BaseScore = sdkmath.NewInt(5)
	cfg.FullSetScore = sdkmath.NewInt(25)
	cfg.NonceScores[11] = sdkmath.NewInt(100)

	testCases := []struct {
		name   string
		module types.ModuleType
		track  types.ModuleType
		inv    types.Inventory
		expect int64
	}{
		{
			name:   "empty",
			module: types.ModuleTypeXBunnies,
			track:  types.ModuleTypeAll,
			inv:    inventory(),
			expect: 0,
		},
		{
			name:   "base_and_override",
			module: types.ModuleTypeXBunnies,
			track:  types.ModuleTypeAll,
			inv:    inventory(1, 2, 11, 1),
			expect: 2*5 + 100,
		},
		{
			name:   "full_set_not_granted_without_support",
			module: types.ModuleTypeXBunnies,
			track:  types.ModuleTypeAll,
			inv:    fullSetInventory(1),
			expect: 50,
		},
		{
			name:   "one_full_set",
			module: types.ModuleTypeCodingDivisionSfts,
			track:  types.ModuleTypeAll,
			inv:    fullSetInventory(1),
			expect: 75,
		},
		{
			name:   "three_full_sets",
			module: types.ModuleTypeCodingDivisionSfts,
			track:  types.ModuleTypeAll,
			inv:    fullSetInventory(3),
			expect: 30*5 + 3*25,
		},
		{
			name:   "incomplete_set",
			module: types.ModuleTypeCodingDivisionSfts,
			track:  types.ModuleTypeAll,
			inv:    inventory(1, 1, 2, 1, 3, 1, 4, 1, 5, 1, 6, 1, 7, 1, 8, 1, 9, 1, 10, 0),
			expect: 45,
		},
		{
			name:   "snakes_zero_on_all",
			module: types.ModuleTypeSnakesSfts,
			track:  types.ModuleTypeAll,
			inv:    inventory(1, 10),
			expect: 0,
		},
		{
			name:   "snakes_scored_on_own_track",
			module: types.ModuleTypeSnakesSfts,
			track:  types.ModuleTypeSnakesSfts,
			inv:    inventory(1, 10),
			expect: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			strategy, err := types.StrategyFor(tc.module)
			requireT.NoError(err)
			requireT.EqualValues(tc.expect, strategy.RawScore(tc.track, tc.inv, cfg).Int64())
		})
	}
}

func TestStrategy_Tracks(t *testing.T) {
	requireT := require.New(t)

	strategy, err := types.StrategyFor(types.ModuleTypeCodingDivisionSfts)
	requireT.NoError(err)
	requireT.Equal([]types.ModuleType{
		types.ModuleTypeAll, types.ModuleTypeCodingDivisionSfts, types.ModuleTypeVestaXDAO,
	}, strategy.Tracks(types.ModuleTypeCodingDivisionSfts))
	requireT.True(strategy.SupportsFullSet())
	requireT.Len(strategy.FullSetNonces(), types.CodingDivisionFullSetMaxNonce)

	strategy, err = types.StrategyFor(types.ModuleTypeAll)
	requireT.NoError(err)
	requireT.Equal([]types.ModuleType{types.ModuleTypeAll}, strategy.Tracks(types.ModuleTypeAll))
	requireT.False(strategy.SupportsFullSet())

	_, err = types.StrategyFor(types.ModuleTypeInvalid)
	requireT.ErrorIs(err, types.ErrInvalidModuleType)
}
