package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	deterministicmap "github.com/tokenize-x/nft-staking/pkg/deterministic_map"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// stakingContext is the unit of work of one score-affecting call on one collection.
// Every write goes to a cache context; the inventory is edited in memory and flushed
// by commit. Nothing reaches the parent context unless commit runs.
type stakingContext struct {
	k          Keeper
	ctx        sdk.Context
	writeCache func()

	user       sdk.AccAddress
	collection string
	module     types.ModuleType
	strategy   types.Strategy

	inventory *deterministicmap.Map[uint64, sdkmath.Int]
	dirty     *deterministicmap.Map[uint64, struct{}]
	committed bool
}

func (k Keeper) newStakingContext(ctx context.Context, user sdk.AccAddress, collection string) (*stakingContext, error) {
	module, err := k.GetPoolModule(ctx, collection)
	if err != nil {
		return nil, err
	}
	strategy, err := types.StrategyFor(module)
	if err != nil {
		return nil, err
	}

	cacheCtx, writeCache := sdk.UnwrapSDKContext(ctx).CacheContext()
	sc := &stakingContext{
		k:          k,
		ctx:        cacheCtx,
		writeCache: writeCache,
		user:       user,
		collection: collection,
		module:     module,
		strategy:   strategy,
		inventory:  deterministicmap.New[uint64, sdkmath.Int](),
		dirty:      deterministicmap.New[uint64, struct{}](),
	}

	err = k.StakedAssets.Walk(
		cacheCtx,
		collections.NewSuperPrefixedTripleRange[sdk.AccAddress, string, uint64](user, collection),
		func(key collections.Triple[sdk.AccAddress, string, uint64], quantity sdkmath.Int) (bool, error) {
			sc.inventory.Set(key.K3(), quantity)
			return false, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return sc, nil
}

// close commits the context when the call succeeded and discards it otherwise.
// Deferred by every entry point right after the context is created.
func (sc *stakingContext) close(errp *error) {
	if *errp != nil || sc.committed {
		return
	}
	*errp = sc.commit()
}

// commit flushes the inventory and writes the cache context to its parent.
func (sc *stakingContext) commit() error {
	if err := sc.flush(); err != nil {
		return err
	}
	sc.writeCache()
	sc.committed = true
	return nil
}

func (sc *stakingContext) flush() error {
	return sc.dirty.RangeErr(func(nonce uint64, _ struct{}) error {
		quantity, _ := sc.inventory.Get(nonce)
		key := collections.Join3(sc.user, sc.collection, nonce)
		return setOrRemove(sc.ctx, sc.k.StakedAssets, key, quantity)
	})
}

func (sc *stakingContext) hasPosition() bool {
	found := false
	sc.inventory.Range(func(_ uint64, quantity sdkmath.Int) bool {
		found = quantity.IsPositive()
		return !found
	})
	return found
}

func (sc *stakingContext) held(nonce uint64) sdkmath.Int {
	quantity, ok := sc.inventory.Get(nonce)
	if !ok {
		return sdkmath.ZeroInt()
	}
	return quantity
}

func (sc *stakingContext) add(nonce uint64, quantity sdkmath.Int) {
	sc.inventory.Set(nonce, sc.held(nonce).Add(quantity))
	sc.dirty.Set(nonce, struct{}{})
}

func (sc *stakingContext) remove(nonce uint64, quantity sdkmath.Int) error {
	held := sc.held(nonce)
	if held.LT(quantity) {
		return errorsmod.Wrapf(types.ErrUnbondingFailed, "nonce %d: requested %s, staked %s", nonce, quantity, held)
	}
	sc.inventory.Set(nonce, held.Sub(quantity))
	sc.dirty.Set(nonce, struct{}{})
	return nil
}

// recomputeScores rescores the in-memory inventory on every track the collection feeds.
func (sc *stakingContext) recomputeScores() error {
	for _, track := range sc.strategy.Tracks(sc.module) {
		cfg, err := sc.k.GetPoolConfig(sc.ctx, sc.collection, track)
		if err != nil {
			return err
		}
		raw := sc.strategy.RawScore(track, sc.inventory, cfg)
		if err := sc.k.updateScore(sc.ctx, track, sc.user, sc.collection, raw); err != nil {
			return err
		}
	}
	return nil
}
