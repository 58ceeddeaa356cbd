package keeper

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// GetParams returns the current module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.Params{}, err
	}
	return params, nil
}

// SetParams sets the module parameters. The primary reward token is registered against All.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.ValidateBasic(); err != nil {
		return err
	}
	if params.PrimaryRewardToken != "" {
		if err := k.RewardTokens.Set(ctx, rewardTokenKey(params.PrimaryRewardToken, types.ModuleTypeAll)); err != nil {
			return err
		}
	}
	return k.Params.Set(ctx, params)
}

// UpdateParams replaces the module parameters via governance.
func (k Keeper) UpdateParams(ctx context.Context, authority string, params types.Params) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	return k.SetParams(ctx, params)
}

func (k Keeper) checkAuthority(authority string) error {
	if k.authority != authority {
		return errors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", k.authority, authority)
	}
	return nil
}
