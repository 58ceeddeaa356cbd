package types

import (
	context "context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper moves staked assets and reward tokens in and out of the module account.
type BankKeeper interface {
	SendCoinsFromAccountToModule(
		ctx context.Context,
		senderAddr sdk.AccAddress,
		recipientModule string,
		amt sdk.Coins,
	) error
	SendCoinsFromModuleToAccount(
		ctx context.Context,
		senderModule string,
		recipientAddr sdk.AccAddress,
		amt sdk.Coins,
	) error
}

// AccountKeeper interface.
type AccountKeeper interface {
	GetModuleAddress(moduleName string) sdk.AccAddress
}

// Clock supplies the current reward epoch and timestamp.
type Clock interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
	CurrentTimestamp(ctx context.Context) (uint64, error)
}
