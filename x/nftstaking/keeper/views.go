package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// GetGeneralStakingData returns the aggregated score of every module with stakers.
func (k Keeper) GetGeneralStakingData(ctx context.Context) ([]types.ModuleScore, error) {
	var scores []types.ModuleScore
	err := k.AggregatedScores.Walk(ctx, nil, func(module types.ModuleType, score sdkmath.Int) (bool, error) {
		scores = append(scores, types.ModuleScore{Module: module, Score: score})
		return false, nil
	})
	return scores, err
}

// GetStakedAssets returns the staked assets of a user in one collection.
func (k Keeper) GetStakedAssets(ctx context.Context, user sdk.AccAddress, collection string) ([]types.AssetAmount, error) {
	var assets []types.AssetAmount
	err := k.StakedAssets.Walk(
		ctx,
		collections.NewSuperPrefixedTripleRange[sdk.AccAddress, string, uint64](user, collection),
		func(key collections.Triple[sdk.AccAddress, string, uint64], quantity sdkmath.Int) (bool, error) {
			assets = append(assets, types.NewAssetAmount(key.K2(), key.K3(), quantity))
			return false, nil
		},
	)
	return assets, err
}

// GetUnbondingBatches returns the unbonding queue of a user ordered by timestamp.
func (k Keeper) GetUnbondingBatches(ctx context.Context, user sdk.AccAddress) ([]types.UnbondingBatch, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	var batches []types.UnbondingBatch
	err = k.Unbondings.Walk(
		ctx,
		collections.NewPrefixedQuadRange[sdk.AccAddress, uint64, string, uint64](user),
		func(key unbondingKey, quantity sdkmath.Int) (bool, error) {
			asset := types.NewAssetAmount(key.K3(), key.K4(), quantity)
			if n := len(batches); n > 0 && batches[n-1].Timestamp == key.K2() {
				batches[n-1].Assets = append(batches[n-1].Assets, asset)
				return false, nil
			}
			batches = append(batches, types.UnbondingBatch{
				Timestamp:   key.K2(),
				ClaimableAt: key.K2() + params.UnbondingTimePenalty,
				Assets:      []types.AssetAmount{asset},
			})
			return false, nil
		},
	)
	return batches, err
}

// GetUserStakingData returns pending rewards, scores, positions and unbondings of a user.
func (k Keeper) GetUserStakingData(ctx context.Context, user sdk.AccAddress) (types.UserStakingData, error) {
	data := types.UserStakingData{}

	var err error
	if data.PendingRewards, err = k.GetPendingRewards(ctx, user); err != nil {
		return types.UserStakingData{}, err
	}
	if data.Deb, err = k.GetUserDeb(ctx, user); err != nil {
		return types.UserStakingData{}, err
	}

	for _, module := range types.AllModuleTypes() {
		score, err := k.GetUserScore(ctx, module, user)
		if err != nil {
			return types.UserStakingData{}, err
		}
		if score.IsPositive() {
			data.Scores = append(data.Scores, types.ModuleScore{Module: module, Score: score})
		}
	}

	err = k.StakedAssets.Walk(
		ctx,
		collections.NewPrefixedTripleRange[sdk.AccAddress, string, uint64](user),
		func(key collections.Triple[sdk.AccAddress, string, uint64], quantity sdkmath.Int) (bool, error) {
			asset := types.NewAssetAmount(key.K2(), key.K3(), quantity)
			if n := len(data.Pools); n > 0 && data.Pools[n-1].Collection == key.K2() {
				data.Pools[n-1].Assets = append(data.Pools[n-1].Assets, asset)
				return false, nil
			}
			module, err := k.GetPoolModule(ctx, key.K2())
			if err != nil {
				return true, err
			}
			data.Pools = append(data.Pools, types.UserPoolData{
				Collection: key.K2(),
				Module:     module,
				Assets:     []types.AssetAmount{asset},
			})
			return false, nil
		},
	)
	if err != nil {
		return types.UserStakingData{}, err
	}

	for i, pool := range data.Pools {
		strategy, err := types.StrategyFor(pool.Module)
		if err != nil {
			return types.UserStakingData{}, err
		}
		for _, track := range strategy.Tracks(pool.Module) {
			score, err := getOrZero(ctx, k.CollectionScores, collections.Join3(track, user, pool.Collection))
			if err != nil {
				return types.UserStakingData{}, err
			}
			data.Pools[i].Scores = append(data.Pools[i].Scores, types.ModuleScore{Module: track, Score: score})
		}
	}

	if data.Unbondings, err = k.GetUnbondingBatches(ctx, user); err != nil {
		return types.UserStakingData{}, err
	}

	return data, nil
}
