package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func rewardTokenKey(token string, module types.ModuleType) collections.Pair[string, types.ModuleType] {
	return collections.Join(token, module)
}

// RegisterRewardToken allows a token to be distributed against a module.
func (k Keeper) RegisterRewardToken(ctx context.Context, authority, token string, module types.ModuleType) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(token); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidRewardToken, "%s: %s", token, err)
	}
	if err := module.Validate(); err != nil {
		return err
	}
	if err := k.RewardTokens.Set(ctx, rewardTokenKey(token, module)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterRewardTkn,
		sdk.NewAttribute(types.AttributeKeyToken, token),
		sdk.NewAttribute(types.AttributeKeyModule, module.String()),
	))
	return nil
}

// IsRewardToken reports whether a token can be distributed against a module.
func (k Keeper) IsRewardToken(ctx context.Context, token string, module types.ModuleType) (bool, error) {
	return k.RewardTokens.Has(ctx, rewardTokenKey(token, module))
}

// DistributeReward funds the current epoch of a (module, token) track. The amount is taken
// from the authority account and priced per unit of the module's aggregated score.
func (k Keeper) DistributeReward(ctx context.Context, authority string, module types.ModuleType, amount sdk.Coin) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if err := module.Validate(); err != nil {
		return err
	}
	if !amount.IsValid() || !amount.IsPositive() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "invalid reward amount %s", amount)
	}

	registered, err := k.IsRewardToken(ctx, amount.Denom, module)
	if err != nil {
		return err
	}
	if !registered {
		return errorsmod.Wrapf(types.ErrInvalidRewardToken, "%s is not a reward token of %s", amount.Denom, module)
	}

	epoch, err := k.clock.CurrentEpoch(ctx)
	if err != nil {
		return err
	}
	timestamp, err := k.clock.CurrentTimestamp(ctx)
	if err != nil {
		return err
	}

	rateKey := collections.Join3(module, amount.Denom, epoch)
	distributed, err := k.RewardRates.Has(ctx, rateKey)
	if err != nil {
		return err
	}
	if distributed {
		return errorsmod.Wrapf(types.ErrRewardAlreadyDistributed, "%s on %s in epoch %d", amount.Denom, module, epoch)
	}

	aggregated, err := k.GetAggregatedScore(ctx, module)
	if err != nil {
		return err
	}
	if !aggregated.IsPositive() {
		return errorsmod.Wrapf(types.ErrZeroAggregatedScore, "module %s", module)
	}

	funder, err := k.addressCodec.StringToBytes(authority)
	if err != nil {
		return err
	}

	return k.atomic(ctx, func(ctx context.Context) error {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, funder, types.ModuleName, sdk.NewCoins(amount)); err != nil {
			return err
		}

		// rounding dust stays in the module account
		rate := amount.Amount.Quo(aggregated)
		if err := k.RewardRates.Set(ctx, rateKey, rate); err != nil {
			return err
		}
		if err := k.DistributionTimestamps.Set(ctx, rateKey, timestamp); err != nil {
			return err
		}

		k.Logger(ctx).Info(
			"distributed reward",
			"module_type", module.String(),
			"amount", amount.String(),
			"aggregated_score", aggregated.String(),
			"rate", rate.String(),
			"epoch", epoch,
		)
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeDistributeReward,
			sdk.NewAttribute(types.AttributeKeyModule, module.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyRate, rate.String()),
			sdk.NewAttribute(types.AttributeKeyEpoch, strconv.FormatUint(epoch, 10)),
		))
		return nil
	})
}

// GetRewardRate returns the rate of an epoch and whether it was distributed.
func (k Keeper) GetRewardRate(
	ctx context.Context, module types.ModuleType, token string, epoch uint64,
) (sdkmath.Int, bool, error) {
	rate, err := k.RewardRates.Get(ctx, collections.Join3(module, token, epoch))
	if errors.Is(err, collections.ErrNotFound) {
		return sdkmath.ZeroInt(), false, nil
	}
	if err != nil {
		return sdkmath.Int{}, false, err
	}
	return rate, true, nil
}
