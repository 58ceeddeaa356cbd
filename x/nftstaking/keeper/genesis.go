package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// InitGenesis initializes the module state from a genesis state. Collection scores are
// restored as exported, score tables are not reapplied to existing positions.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	for _, pool := range genState.Pools {
		if err := k.Pools.Set(ctx, pool.Collection, pool.Module); err != nil {
			return err
		}
	}
	for _, entry := range genState.BaseScores {
		if err := k.BaseScores.Set(ctx, collections.Join(entry.Collection, entry.Module), entry.Score); err != nil {
			return err
		}
	}
	for _, entry := range genState.NonceScores {
		if err := k.NonceScores.Set(ctx, collections.Join3(entry.Collection, entry.Module, entry.Nonce), entry.Score); err != nil {
			return err
		}
	}
	for _, entry := range genState.FullSetScores {
		if err := k.FullSetScores.Set(ctx, collections.Join(entry.Collection, entry.Module), entry.Score); err != nil {
			return err
		}
	}
	for _, reg := range genState.RewardTokens {
		if err := k.RewardTokens.Set(ctx, rewardTokenKey(reg.Token, reg.Module)); err != nil {
			return err
		}
	}

	for _, entry := range genState.UserDebs {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		if err := setOrRemove(ctx, k.UserDebs, addr, entry.Deb); err != nil {
			return err
		}
	}

	for _, entry := range genState.StakedAssets {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		if err := k.StakedAssets.Set(ctx, collections.Join3(sdk.AccAddress(addr), entry.Collection, entry.Nonce), entry.Quantity); err != nil {
			return err
		}
	}
	// debs are in place, so the All track is boosted the way it was at export
	for _, entry := range genState.CollectionScores {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		if err := k.updateScore(ctx, entry.Module, addr, entry.Collection, entry.Score); err != nil {
			return err
		}
	}

	for _, entry := range genState.RewardRates {
		key := collections.Join3(entry.Module, entry.Token, entry.Epoch)
		if err := k.RewardRates.Set(ctx, key, entry.Rate); err != nil {
			return err
		}
		if err := k.DistributionTimestamps.Set(ctx, key, entry.Timestamp); err != nil {
			return err
		}
	}
	// restoring scores starts accrual at the import epoch, checkpoints come from genesis
	if err := k.RewardCheckpoints.Clear(ctx, nil); err != nil {
		return err
	}
	for _, entry := range genState.RewardCheckpoints {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		if err := k.RewardCheckpoints.Set(ctx, collections.Join3(entry.Module, sdk.AccAddress(addr), entry.Token), entry.Epoch); err != nil {
			return err
		}
	}
	for _, entry := range genState.PendingRewards {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		if err := setOrRemove(ctx, k.PendingRewards, collections.Join(sdk.AccAddress(addr), entry.Amount.Denom), entry.Amount.Amount); err != nil {
			return err
		}
	}
	for _, entry := range genState.Unbondings {
		addr, err := k.addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return err
		}
		key := collections.Join4(sdk.AccAddress(addr), entry.Timestamp, entry.Collection, entry.Nonce)
		if err := k.Unbondings.Set(ctx, key, entry.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis returns the module genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesisState()

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	genesis.Params = params

	err = k.Pools.Walk(ctx, nil, func(collection string, module types.ModuleType) (bool, error) {
		genesis.Pools = append(genesis.Pools, types.PoolRegistration{Collection: collection, Module: module})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.BaseScores.Walk(ctx, nil, func(key collections.Pair[string, types.ModuleType], score sdkmath.Int) (bool, error) {
		genesis.BaseScores = append(genesis.BaseScores, types.ScoreEntry{Collection: key.K1(), Module: key.K2(), Score: score})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.NonceScores.Walk(ctx, nil, func(key collections.Triple[string, types.ModuleType, uint64], score sdkmath.Int) (bool, error) {
		genesis.NonceScores = append(genesis.NonceScores, types.ScoreEntry{
			Collection: key.K1(), Module: key.K2(), Nonce: key.K3(), Score: score,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.FullSetScores.Walk(ctx, nil, func(key collections.Pair[string, types.ModuleType], score sdkmath.Int) (bool, error) {
		genesis.FullSetScores = append(genesis.FullSetScores, types.ScoreEntry{Collection: key.K1(), Module: key.K2(), Score: score})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.RewardTokens.Walk(ctx, nil, func(key collections.Pair[string, types.ModuleType]) (bool, error) {
		genesis.RewardTokens = append(genesis.RewardTokens, types.RewardTokenRegistration{Token: key.K1(), Module: key.K2()})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.StakedAssets.Walk(ctx, nil, func(key collections.Triple[sdk.AccAddress, string, uint64], quantity sdkmath.Int) (bool, error) {
		addr, err := k.addressCodec.BytesToString(key.K1())
		if err != nil {
			return true, err
		}
		genesis.StakedAssets = append(genesis.StakedAssets, types.StakedAssetEntry{
			Address: addr, Collection: key.K2(), Nonce: key.K3(), Quantity: quantity,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.UserDebs.Walk(ctx, nil, func(user sdk.AccAddress, deb sdkmath.Int) (bool, error) {
		addr, err := k.addressCodec.BytesToString(user)
		if err != nil {
			return true, err
		}
		genesis.UserDebs = append(genesis.UserDebs, types.UserDebEntry{Address: addr, Deb: deb})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.CollectionScores.Walk(ctx, nil, func(key collections.Triple[types.ModuleType, sdk.AccAddress, string], score sdkmath.Int) (bool, error) {
		addr, err := k.addressCodec.BytesToString(key.K2())
		if err != nil {
			return true, err
		}
		genesis.CollectionScores = append(genesis.CollectionScores, types.CollectionScoreEntry{
			Module: key.K1(), Address: addr, Collection: key.K3(), Score: score,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.RewardRates.Walk(ctx, nil, func(key collections.Triple[types.ModuleType, string, uint64], rate sdkmath.Int) (bool, error) {
		timestamp, err := k.DistributionTimestamps.Get(ctx, key)
		if err != nil {
			return true, err
		}
		genesis.RewardRates = append(genesis.RewardRates, types.RewardRateEntry{
			Module: key.K1(), Token: key.K2(), Epoch: key.K3(), Rate: rate, Timestamp: timestamp,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.RewardCheckpoints.Walk(ctx, nil, func(key collections.Triple[types.ModuleType, sdk.AccAddress, string], epoch uint64) (bool, error) {
		addr, err := k.addressCodec.BytesToString(key.K2())
		if err != nil {
			return true, err
		}
		genesis.RewardCheckpoints = append(genesis.RewardCheckpoints, types.RewardCheckpointEntry{
			Module: key.K1(), Address: addr, Token: key.K3(), Epoch: epoch,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.PendingRewards.Walk(ctx, nil, func(key collections.Pair[sdk.AccAddress, string], amount sdkmath.Int) (bool, error) {
		addr, err := k.addressCodec.BytesToString(key.K1())
		if err != nil {
			return true, err
		}
		genesis.PendingRewards = append(genesis.PendingRewards, types.PendingRewardEntry{
			Address: addr, Amount: sdk.NewCoin(key.K2(), amount),
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Unbondings.Walk(ctx, nil, func(key unbondingKey, quantity sdkmath.Int) (bool, error) {
		addr, err := k.addressCodec.BytesToString(key.K1())
		if err != nil {
			return true, err
		}
		genesis.Unbondings = append(genesis.Unbondings, types.UnbondingEntry{
			Address: addr, Timestamp: key.K2(), Collection: key.K3(), Nonce: key.K4(), Quantity: quantity,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return genesis, nil
}
