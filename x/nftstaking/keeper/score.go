package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// GetUserDeb returns the boost of a user, the denomination when none is stored.
func (k Keeper) GetUserDeb(ctx context.Context, user sdk.AccAddress) (sdkmath.Int, error) {
	deb, err := getOrZero(ctx, k.UserDebs, user)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if deb.IsZero() {
		return types.DefaultDeb(), nil
	}
	return deb, nil
}

// GetUserScore returns the boosted score of a user on a track.
func (k Keeper) GetUserScore(ctx context.Context, module types.ModuleType, user sdk.AccAddress) (sdkmath.Int, error) {
	return getOrZero(ctx, k.UserScores, collections.Join(module, user))
}

// GetRawUserScore returns the unboosted score of a user on a track.
func (k Keeper) GetRawUserScore(ctx context.Context, module types.ModuleType, user sdk.AccAddress) (sdkmath.Int, error) {
	return getOrZero(ctx, k.RawUserScores, collections.Join(module, user))
}

// GetAggregatedScore returns the sum of all boosted user scores on a track.
func (k Keeper) GetAggregatedScore(ctx context.Context, module types.ModuleType) (sdkmath.Int, error) {
	return getOrZero(ctx, k.AggregatedScores, module)
}

// updateScore replaces the raw contribution of one collection to a user's track score
// and commits the resulting user score.
func (k Keeper) updateScore(
	ctx context.Context,
	track types.ModuleType,
	user sdk.AccAddress,
	collection string,
	newCollectionRaw sdkmath.Int,
) error {
	key := collections.Join3(track, user, collection)
	oldCollectionRaw, err := getOrZero(ctx, k.CollectionScores, key)
	if err != nil {
		return err
	}
	if oldCollectionRaw.Equal(newCollectionRaw) {
		return nil
	}
	if err := setOrRemove(ctx, k.CollectionScores, key, newCollectionRaw); err != nil {
		return err
	}

	oldRaw, err := k.GetRawUserScore(ctx, track, user)
	if err != nil {
		return err
	}
	deb := types.DefaultDeb()
	if track == types.ModuleTypeAll {
		if deb, err = k.GetUserDeb(ctx, user); err != nil {
			return err
		}
	}

	return k.commitUserScore(ctx, track, user, oldRaw.Sub(oldCollectionRaw).Add(newCollectionRaw), deb)
}

// commitUserScore stores the new raw score and its boosted value, moving the aggregate by
// the boosted delta. It writes nothing when neither value changes.
func (k Keeper) commitUserScore(
	ctx context.Context,
	track types.ModuleType,
	user sdk.AccAddress,
	newRaw sdkmath.Int,
	deb sdkmath.Int,
) error {
	if newRaw.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "negative raw score %s for %s on %s", newRaw, user, track)
	}

	key := collections.Join(track, user)
	oldBoosted, err := getOrZero(ctx, k.UserScores, key)
	if err != nil {
		return err
	}
	oldRaw, err := getOrZero(ctx, k.RawUserScores, key)
	if err != nil {
		return err
	}

	newBoosted := newRaw
	if track == types.ModuleTypeAll {
		newBoosted = types.ApplyDeb(newRaw, deb)
	}
	if newBoosted.Equal(oldBoosted) && newRaw.Equal(oldRaw) {
		return nil
	}

	aggregated, err := k.GetAggregatedScore(ctx, track)
	if err != nil {
		return err
	}
	aggregated = aggregated.Sub(oldBoosted).Add(newBoosted)
	if aggregated.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "aggregated score of %s would become negative", track)
	}

	if err := setOrRemove(ctx, k.AggregatedScores, track, aggregated); err != nil {
		return err
	}
	if err := setOrRemove(ctx, k.UserScores, key, newBoosted); err != nil {
		return err
	}
	if err := setOrRemove(ctx, k.RawUserScores, key, newRaw); err != nil {
		return err
	}

	switch {
	case oldBoosted.IsZero() && newBoosted.IsPositive():
		return k.startAccrual(ctx, track, user)
	case oldBoosted.IsPositive() && newBoosted.IsZero():
		return k.stopAccrual(ctx, track, user)
	default:
		return nil
	}
}
