package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/samber/lo"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

type unbondingKey = collections.Quad[sdk.AccAddress, uint64, string, uint64]

// StartUnbonding removes assets from a staked position and queues them behind the
// unbonding cooldown. The whole request is validated before anything is removed.
func (k Keeper) StartUnbonding(
	ctx context.Context, user sdk.AccAddress, collection string, items []types.NonceQuantity,
) (err error) {
	sc, err := k.newStakingContext(ctx, user, collection)
	if err != nil {
		return err
	}
	defer sc.close(&err)

	if !sc.hasPosition() {
		return errorsmod.Wrapf(types.ErrUnbondingFailed, "no staked position in %s", collection)
	}
	if len(items) == 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "no items to unbond")
	}
	if dups := lo.FindDuplicatesBy(items, func(item types.NonceQuantity) uint64 { return item.Nonce }); len(dups) > 0 {
		return errorsmod.Wrapf(types.ErrDuplicateNonce, "nonce %d", dups[0].Nonce)
	}
	for _, item := range items {
		if item.Quantity.IsNil() || !item.Quantity.IsPositive() {
			return errorsmod.Wrapf(types.ErrInvalidInput, "quantity of nonce %d must be positive", item.Nonce)
		}
		if held := sc.held(item.Nonce); held.LT(item.Quantity) {
			return errorsmod.Wrapf(types.ErrUnbondingFailed, "nonce %d: requested %s, staked %s", item.Nonce, item.Quantity, held)
		}
	}

	timestamp, err := k.clock.CurrentTimestamp(sc.ctx)
	if err != nil {
		return err
	}
	if err := k.secureAll(sc.ctx, user); err != nil {
		return err
	}
	for _, item := range items {
		if err := sc.remove(item.Nonce, item.Quantity); err != nil {
			return err
		}
		// same-timestamp requests merge into one batch
		key := collections.Join4(user, timestamp, collection, item.Nonce)
		queued, err := getOrZero(sc.ctx, k.Unbondings, key)
		if err != nil {
			return err
		}
		if err := k.Unbondings.Set(sc.ctx, key, queued.Add(item.Quantity)); err != nil {
			return err
		}
	}
	if err := sc.recomputeScores(); err != nil {
		return err
	}

	sc.ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeStartUnbonding,
		sdk.NewAttribute(types.AttributeKeyAddress, user.String()),
		sdk.NewAttribute(types.AttributeKeyCollection, collection),
		sdk.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatUint(timestamp, 10)),
	))
	return nil
}

// ClaimUnbonded pays out every unbonding batch whose cooldown elapsed.
func (k Keeper) ClaimUnbonded(ctx context.Context, user sdk.AccAddress) (sdk.Coins, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	now, err := k.clock.CurrentTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	var matured []collections.KeyValue[unbondingKey, sdkmath.Int]
	err = k.Unbondings.Walk(
		ctx,
		collections.NewPrefixedQuadRange[sdk.AccAddress, uint64, string, uint64](user),
		func(key unbondingKey, quantity sdkmath.Int) (bool, error) {
			if !isMatured(key.K2(), now, params.UnbondingTimePenalty) {
				// keys are ordered by timestamp
				return true, nil
			}
			matured = append(matured, collections.KeyValue[unbondingKey, sdkmath.Int]{Key: key, Value: quantity})
			return false, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if len(matured) == 0 {
		return nil, errorsmod.Wrapf(types.ErrNothingToClaim, "no matured unbondings for %s", user)
	}

	assets := sdk.NewCoins()
	err = k.atomic(ctx, func(ctx context.Context) error {
		for _, kv := range matured {
			if err := k.Unbondings.Remove(ctx, kv.Key); err != nil {
				return err
			}
			assets = assets.Add(types.NewAssetAmount(kv.Key.K3(), kv.Key.K4(), kv.Value).Coin())
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, user, assets); err != nil {
			return err
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeClaimUnbonded,
			sdk.NewAttribute(types.AttributeKeyAddress, user.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, assets.String()),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func isMatured(timestamp, now, penalty uint64) bool {
	return now >= timestamp && now-timestamp >= penalty
}
