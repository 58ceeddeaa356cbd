package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// UpdateDeb changes the boost of a user. Rewards are secured with the old boost first,
// then only this user's All score and the All aggregate move.
func (k Keeper) UpdateDeb(ctx context.Context, authority string, user sdk.AccAddress, deb sdkmath.Int) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if deb.IsNil() || deb.IsNegative() {
		return errorsmod.Wrap(types.ErrInvalidInput, "deb must be non-negative")
	}

	return k.atomic(ctx, func(ctx context.Context) error {
		if err := k.secureAll(ctx, user); err != nil {
			return err
		}

		raw, err := k.GetRawUserScore(ctx, types.ModuleTypeAll, user)
		if err != nil {
			return err
		}
		if err := k.commitUserScore(ctx, types.ModuleTypeAll, user, raw, deb); err != nil {
			return err
		}

		if deb.Equal(types.DefaultDeb()) {
			err = k.UserDebs.Remove(ctx, user)
		} else {
			err = setOrRemove(ctx, k.UserDebs, user, deb)
		}
		if err != nil {
			return err
		}

		k.Logger(ctx).Info("updated deb", "address", user.String(), "deb", deb.String())
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeUpdateDeb,
			sdk.NewAttribute(types.AttributeKeyAddress, user.String()),
			sdk.NewAttribute(types.AttributeKeyDeb, deb.String()),
		))
		return nil
	})
}
