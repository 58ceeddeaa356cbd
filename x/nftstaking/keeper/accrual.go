package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	deterministicmap "github.com/tokenize-x/nft-staking/pkg/deterministic_map"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// firstUnsecuredEpoch returns the first epoch not yet folded into pending rewards.
func (k Keeper) firstUnsecuredEpoch(
	ctx context.Context, module types.ModuleType, user sdk.AccAddress, token string,
) (uint64, error) {
	epoch, err := k.RewardCheckpoints.Get(ctx, collections.Join3(module, user, token))
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return epoch, err
}

// unstoredPending prices every distributed epoch since the checkpoint with the current
// user score. Only correct because every score change secures first.
func (k Keeper) unstoredPending(
	ctx context.Context, module types.ModuleType, user sdk.AccAddress, token string, epoch uint64,
) (sdkmath.Int, error) {
	score, err := k.GetUserScore(ctx, module, user)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if score.IsZero() {
		return sdkmath.ZeroInt(), nil
	}

	first, err := k.firstUnsecuredEpoch(ctx, module, user, token)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if first > epoch {
		return sdkmath.ZeroInt(), nil
	}

	rates := sdkmath.ZeroInt()
	rng := new(collections.Range[collections.Triple[types.ModuleType, string, uint64]]).
		StartInclusive(collections.Join3(module, token, first)).
		EndInclusive(collections.Join3(module, token, epoch))
	err = k.RewardRates.Walk(ctx, rng, func(_ collections.Triple[types.ModuleType, string, uint64], rate sdkmath.Int) (bool, error) {
		rates = rates.Add(rate)
		return false, nil
	})
	if err != nil {
		return sdkmath.Int{}, err
	}

	return score.Mul(rates), nil
}

// secure folds the unstored reward of a (module, user, token) into pending rewards and
// moves the checkpoint. A user without score on the module has nothing to secure and no
// checkpoint, one is started when the score becomes positive.
func (k Keeper) secure(
	ctx context.Context, module types.ModuleType, user sdk.AccAddress, token string, epoch uint64,
) error {
	score, err := k.GetUserScore(ctx, module, user)
	if err != nil {
		return err
	}
	if score.IsZero() {
		return nil
	}

	unstored, err := k.unstoredPending(ctx, module, user, token, epoch)
	if err != nil {
		return err
	}
	if unstored.IsPositive() {
		pendingKey := collections.Join(user, token)
		stored, err := getOrZero(ctx, k.PendingRewards, pendingKey)
		if err != nil {
			return err
		}
		if err := k.PendingRewards.Set(ctx, pendingKey, stored.Add(unstored)); err != nil {
			return err
		}
	}

	next, err := k.nextCheckpoint(ctx, module, token, epoch)
	if err != nil {
		return err
	}
	current, err := k.firstUnsecuredEpoch(ctx, module, user, token)
	if err != nil {
		return err
	}
	if current == next {
		return nil
	}
	return k.RewardCheckpoints.Set(ctx, collections.Join3(module, user, token), next)
}

// nextCheckpoint returns the first epoch not yet earned by a score held now. When the
// current epoch has no rate yet it stays open, so a distribution later in the same epoch
// is still picked up.
func (k Keeper) nextCheckpoint(ctx context.Context, module types.ModuleType, token string, epoch uint64) (uint64, error) {
	_, distributed, err := k.GetRewardRate(ctx, module, token, epoch)
	if err != nil {
		return 0, err
	}
	if distributed {
		return epoch + 1, nil
	}
	return epoch, nil
}

// startAccrual checkpoints every reward token of a track for a user whose score just
// became positive, so earlier epochs are not priced with the new score.
func (k Keeper) startAccrual(ctx context.Context, module types.ModuleType, user sdk.AccAddress) error {
	epoch, err := k.clock.CurrentEpoch(ctx)
	if err != nil {
		return err
	}
	registrations, err := k.rewardTokenRegistrations(ctx)
	if err != nil {
		return err
	}
	for _, reg := range registrations {
		if reg.K2() != module {
			continue
		}
		next, err := k.nextCheckpoint(ctx, module, reg.K1(), epoch)
		if err != nil {
			return err
		}
		if err := k.RewardCheckpoints.Set(ctx, collections.Join3(module, user, reg.K1()), next); err != nil {
			return err
		}
	}
	return nil
}

// stopAccrual drops the checkpoints of a user whose score on a track fell to zero. The
// caller has secured the user before the score changed.
func (k Keeper) stopAccrual(ctx context.Context, module types.ModuleType, user sdk.AccAddress) error {
	iter, err := k.RewardCheckpoints.Iterate(
		ctx, collections.NewSuperPrefixedTripleRange[types.ModuleType, sdk.AccAddress, string](module, user),
	)
	if err != nil {
		return err
	}
	keys, err := iter.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := k.RewardCheckpoints.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// secureAll secures every registered (token, module) pair of a user.
func (k Keeper) secureAll(ctx context.Context, user sdk.AccAddress) error {
	epoch, err := k.clock.CurrentEpoch(ctx)
	if err != nil {
		return err
	}
	registrations, err := k.rewardTokenRegistrations(ctx)
	if err != nil {
		return err
	}
	for _, reg := range registrations {
		if err := k.secure(ctx, reg.K2(), user, reg.K1(), epoch); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) rewardTokenRegistrations(ctx context.Context) ([]collections.Pair[string, types.ModuleType], error) {
	iter, err := k.RewardTokens.Iterate(ctx, nil)
	if err != nil {
		return nil, err
	}
	return iter.Keys()
}

// GetPendingRewards returns secured plus unsecured rewards of a user per token.
func (k Keeper) GetPendingRewards(ctx context.Context, user sdk.AccAddress) (sdk.Coins, error) {
	epoch, err := k.clock.CurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}

	totals := deterministicmap.New[string, sdkmath.Int]()
	add := func(token string, amount sdkmath.Int) {
		totals.Update(token, func(current sdkmath.Int, found bool) sdkmath.Int {
			if !found {
				return amount
			}
			return current.Add(amount)
		})
	}

	err = k.PendingRewards.Walk(
		ctx,
		collections.NewPrefixedPairRange[sdk.AccAddress, string](user),
		func(key collections.Pair[sdk.AccAddress, string], amount sdkmath.Int) (bool, error) {
			add(key.K2(), amount)
			return false, nil
		},
	)
	if err != nil {
		return nil, err
	}

	registrations, err := k.rewardTokenRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	for _, reg := range registrations {
		unstored, err := k.unstoredPending(ctx, reg.K2(), user, reg.K1(), epoch)
		if err != nil {
			return nil, err
		}
		add(reg.K1(), unstored)
	}

	coins := sdk.NewCoins()
	totals.Range(func(token string, amount sdkmath.Int) bool {
		if amount.IsPositive() {
			coins = coins.Add(sdk.NewCoin(token, amount))
		}
		return true
	})
	return coins, nil
}

// ClaimRewards secures and pays out every pending reward of a user.
func (k Keeper) ClaimRewards(ctx context.Context, user sdk.AccAddress) (sdk.Coins, error) {
	var payout sdk.Coins
	err := k.atomic(ctx, func(ctx context.Context) error {
		if err := k.secureAll(ctx, user); err != nil {
			return err
		}

		iter, err := k.PendingRewards.Iterate(ctx, collections.NewPrefixedPairRange[sdk.AccAddress, string](user))
		if err != nil {
			return err
		}
		pending, err := iter.KeyValues()
		if err != nil {
			return err
		}

		payout = sdk.NewCoins()
		for _, kv := range pending {
			if err := k.PendingRewards.Remove(ctx, kv.Key); err != nil {
				return err
			}
			if kv.Value.IsPositive() {
				payout = payout.Add(sdk.NewCoin(kv.Key.K2(), kv.Value))
			}
		}
		if payout.IsZero() {
			return errorsmod.Wrapf(types.ErrNothingToClaim, "no pending rewards for %s", user)
		}

		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, user, payout); err != nil {
			return err
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeClaimRewards,
			sdk.NewAttribute(types.AttributeKeyAddress, user.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, payout.String()),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}
