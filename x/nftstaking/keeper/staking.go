package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/samber/lo"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// Stake moves assets of one collection from the user into the module and rescores the user.
func (k Keeper) Stake(ctx context.Context, user sdk.AccAddress, assets []types.AssetAmount) (err error) {
	if len(assets) == 0 {
		return errorsmod.Wrap(types.ErrInvalidInput, "no assets to stake")
	}
	collectionIDs := lo.Uniq(lo.Map(assets, func(a types.AssetAmount, _ int) string { return a.Collection }))
	if len(collectionIDs) != 1 {
		return errorsmod.Wrapf(types.ErrOneCollectionPerTx, "got %v", collectionIDs)
	}
	for _, asset := range assets {
		if err := asset.Validate(); err != nil {
			return err
		}
	}

	sc, err := k.newStakingContext(ctx, user, collectionIDs[0])
	if err != nil {
		return err
	}
	defer sc.close(&err)

	if err := k.bankKeeper.SendCoinsFromAccountToModule(sc.ctx, user, types.ModuleName, types.AssetsToCoins(assets)); err != nil {
		return err
	}
	if err := k.secureAll(sc.ctx, user); err != nil {
		return err
	}
	for _, asset := range assets {
		sc.add(asset.Nonce, asset.Quantity)
	}
	if err := sc.recomputeScores(); err != nil {
		return err
	}

	sc.ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeStake,
		sdk.NewAttribute(types.AttributeKeyAddress, user.String()),
		sdk.NewAttribute(types.AttributeKeyCollection, sc.collection),
		sdk.NewAttribute(types.AttributeKeyAmount, types.AssetsToCoins(assets).String()),
	))
	return nil
}
