package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// NOTE: Error status code must start from 2.
var (
	// ErrInvalidAuthority is returned when the signer is not the module authority.
	ErrInvalidAuthority = sdkerrors.Register(ModuleName, 2, "invalid authority")
	// ErrInvalidParam is returned when module params are malformed.
	ErrInvalidParam = sdkerrors.Register(ModuleName, 3, "invalid param")
	// ErrInvalidInput is returned for malformed requests.
	ErrInvalidInput = sdkerrors.Register(ModuleName, 4, "invalid input")
	// ErrInvalidModuleType is returned for Invalid or unknown module types.
	ErrInvalidModuleType = sdkerrors.Register(ModuleName, 5, "invalid module type")
	// ErrInvalidCollection is returned when a collection is not registered as a pool.
	ErrInvalidCollection = sdkerrors.Register(ModuleName, 6, "invalid collection")
	// ErrCollectionAlreadyRegistered is returned on a second registration of the same collection.
	ErrCollectionAlreadyRegistered = sdkerrors.Register(ModuleName, 7, "collection already registered")
	// ErrOneCollectionPerTx is returned when a stake mixes collections.
	ErrOneCollectionPerTx = sdkerrors.Register(ModuleName, 8, "only one collection is allowed per tx")
	// ErrUnbondingFailed is returned when an unbonding request exceeds the staked position.
	ErrUnbondingFailed = sdkerrors.Register(ModuleName, 9, "unbonding failed")
	// ErrDuplicateNonce is returned when an unbonding request lists the same nonce twice.
	ErrDuplicateNonce = sdkerrors.Register(ModuleName, 10, "duplicate nonce")
	// ErrNothingToClaim is returned when there are no rewards or matured unbondings.
	ErrNothingToClaim = sdkerrors.Register(ModuleName, 11, "nothing to claim")
	// ErrInvalidRewardToken is returned when a token is not registered for the module.
	ErrInvalidRewardToken = sdkerrors.Register(ModuleName, 12, "invalid reward token")
	// ErrRewardAlreadyDistributed is returned when the epoch rate is already set.
	ErrRewardAlreadyDistributed = sdkerrors.Register(ModuleName, 13, "reward already distributed")
	// ErrZeroAggregatedScore is returned when distributing against an empty pool.
	ErrZeroAggregatedScore = sdkerrors.Register(ModuleName, 14, "aggregated score is zero")
)
