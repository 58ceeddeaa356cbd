package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// RegisterPool maps a collection to a module type. A collection can be registered once.
func (k Keeper) RegisterPool(ctx context.Context, authority, collection string, module types.ModuleType) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := types.ValidateCollection(collection); err != nil {
		return err
	}
	if err := module.Validate(); err != nil {
		return err
	}

	found, err := k.Pools.Has(ctx, collection)
	if err != nil {
		return err
	}
	if found {
		return errorsmod.Wrapf(types.ErrCollectionAlreadyRegistered, "collection %s", collection)
	}
	if err := k.Pools.Set(ctx, collection, module); err != nil {
		return err
	}

	k.Logger(ctx).Info("registered staking pool", "collection", collection, "module_type", module.String())
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterPool,
		sdk.NewAttribute(types.AttributeKeyCollection, collection),
		sdk.NewAttribute(types.AttributeKeyModule, module.String()),
	))
	return nil
}

// GetPoolModule returns the module type of a registered collection.
func (k Keeper) GetPoolModule(ctx context.Context, collection string) (types.ModuleType, error) {
	module, err := k.Pools.Get(ctx, collection)
	if errors.Is(err, collections.ErrNotFound) {
		return types.ModuleTypeInvalid, errorsmod.Wrapf(types.ErrInvalidCollection, "collection %s is not registered", collection)
	}
	if err != nil {
		return types.ModuleTypeInvalid, err
	}
	return module, nil
}

// SetBaseScore sets the default per-unit score of a (collection, module) table.
func (k Keeper) SetBaseScore(
	ctx context.Context, authority, collection string, module types.ModuleType, score sdkmath.Int,
) error {
	if err := k.validateScoreUpdate(ctx, authority, collection, module, score); err != nil {
		return err
	}
	return k.BaseScores.Set(ctx, collections.Join(collection, module), score)
}

// SetNonceScore overrides the per-unit score of one nonce.
func (k Keeper) SetNonceScore(
	ctx context.Context, authority, collection string, nonce uint64, module types.ModuleType, score sdkmath.Int,
) error {
	if err := k.validateScoreUpdate(ctx, authority, collection, module, score); err != nil {
		return err
	}
	return k.NonceScores.Set(ctx, collections.Join3(collection, module, nonce), score)
}

// SetFullSetScore sets the bonus granted per owned full set.
func (k Keeper) SetFullSetScore(
	ctx context.Context, authority, collection string, module types.ModuleType, score sdkmath.Int,
) error {
	if err := k.validateScoreUpdate(ctx, authority, collection, module, score); err != nil {
		return err
	}
	return k.FullSetScores.Set(ctx, collections.Join(collection, module), score)
}

func (k Keeper) validateScoreUpdate(
	ctx context.Context, authority, collection string, module types.ModuleType, score sdkmath.Int,
) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := module.Validate(); err != nil {
		return err
	}
	if score.IsNil() || score.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "score must be non-negative")
	}
	_, err := k.GetPoolModule(ctx, collection)
	return err
}

// GetPoolConfig loads the score table of a (collection, module).
func (k Keeper) GetPoolConfig(ctx context.Context, collection string, module types.ModuleType) (types.PoolConfig, error) {
	cfg := types.NewPoolConfig()

	var err error
	cfg.BaseScore, err = getOrZero(ctx, k.BaseScores, collections.Join(collection, module))
	if err != nil {
		return types.PoolConfig{}, err
	}
	cfg.FullSetScore, err = getOrZero(ctx, k.FullSetScores, collections.Join(collection, module))
	if err != nil {
		return types.PoolConfig{}, err
	}

	err = k.NonceScores.Walk(
		ctx,
		collections.NewSuperPrefixedTripleRange[string, types.ModuleType, uint64](collection, module),
		func(key collections.Triple[string, types.ModuleType, uint64], score sdkmath.Int) (bool, error) {
			cfg.NonceScores[key.K3()] = score
			return false, nil
		},
	)
	if err != nil {
		return types.PoolConfig{}, err
	}

	return cfg, nil
}
