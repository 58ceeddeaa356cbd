package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultUnbondingTimePenalty is the default unbonding cooldown in seconds.
const DefaultUnbondingTimePenalty uint64 = 3 * 24 * 3600

// Params defines the module parameters.
type Params struct {
	// UnbondingTimePenalty is the number of seconds before unbonded assets can be claimed.
	UnbondingTimePenalty uint64 `json:"unbonding_time_penalty"`
	// PrimaryRewardToken is always registered as a reward token of the All module.
	PrimaryRewardToken string `json:"primary_reward_token"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		UnbondingTimePenalty: DefaultUnbondingTimePenalty,
	}
}

// ValidateBasic performs basic validation on module parameters.
func (p Params) ValidateBasic() error {
	if p.PrimaryRewardToken != "" {
		if err := sdk.ValidateDenom(p.PrimaryRewardToken); err != nil {
			return errorsmod.Wrapf(ErrInvalidParam, "primary reward token: %s", err)
		}
	}
	return nil
}
