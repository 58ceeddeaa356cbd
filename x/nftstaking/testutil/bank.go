package testutil

import (
	"context"

	"cosmossdk.io/collections"
	sdkstore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

var (
	_ types.BankKeeper    = Bank{}
	_ types.AccountKeeper = Bank{}
)

// Bank is a store backed ledger of balances. It lives in the same multistore as the
// module so cache contexts roll its writes back together with the keeper's.
type Bank struct {
	Balances collections.Map[collections.Pair[sdk.AccAddress, string], sdkmath.Int]
}

// NewBank returns a bank persisting balances through the store service.
func NewBank(storeService sdkstore.KVStoreService) Bank {
	sb := collections.NewSchemaBuilder(storeService)
	b := Bank{
		Balances: collections.NewMap(
			sb,
			collections.NewPrefix(0),
			"balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey),
			sdk.IntValue,
		),
	}
	if _, err := sb.Build(); err != nil {
		panic(err)
	}
	return b
}

// GetModuleAddress returns the address of a module account.
func (Bank) GetModuleAddress(moduleName string) sdk.AccAddress {
	return authtypes.NewModuleAddress(moduleName)
}

// Mint credits coins to an address.
func (b Bank) Mint(ctx context.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	for _, coin := range coins {
		if err := b.add(ctx, addr, coin); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns every balance of an address.
func (b Bank) Balance(ctx context.Context, addr sdk.AccAddress) (sdk.Coins, error) {
	coins := sdk.NewCoins()
	err := b.Balances.Walk(
		ctx,
		collections.NewPrefixedPairRange[sdk.AccAddress, string](addr),
		func(key collections.Pair[sdk.AccAddress, string], amount sdkmath.Int) (bool, error) {
			coins = coins.Add(sdk.NewCoin(key.K2(), amount))
			return false, nil
		},
	)
	return coins, err
}

// ModuleBalance returns every balance of a module account.
func (b Bank) ModuleBalance(ctx context.Context, moduleName string) (sdk.Coins, error) {
	return b.Balance(ctx, b.GetModuleAddress(moduleName))
}

// SendCoinsFromAccountToModule moves coins from an account to a module account.
func (b Bank) SendCoinsFromAccountToModule(
	ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins,
) error {
	return b.send(ctx, senderAddr, b.GetModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount moves coins from a module account to an account.
func (b Bank) SendCoinsFromModuleToAccount(
	ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins,
) error {
	return b.send(ctx, b.GetModuleAddress(senderModule), recipientAddr, amt)
}

func (b Bank) send(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrapf(cosmoserrors.ErrInvalidCoins, "%s", amt)
	}
	for _, coin := range amt {
		if err := b.sub(ctx, from, coin); err != nil {
			return err
		}
		if err := b.add(ctx, to, coin); err != nil {
			return err
		}
	}
	return nil
}

func (b Bank) add(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	key := collections.Join(addr, coin.Denom)
	balance, err := b.balance(ctx, key)
	if err != nil {
		return err
	}
	return b.Balances.Set(ctx, key, balance.Add(coin.Amount))
}

func (b Bank) sub(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	key := collections.Join(addr, coin.Denom)
	balance, err := b.balance(ctx, key)
	if err != nil {
		return err
	}
	if balance.LT(coin.Amount) {
		return errorsmod.Wrapf(cosmoserrors.ErrInsufficientFunds, "%s%s is smaller than %s", balance, coin.Denom, coin)
	}
	remaining := balance.Sub(coin.Amount)
	if remaining.IsZero() {
		return b.Balances.Remove(ctx, key)
	}
	return b.Balances.Set(ctx, key, remaining)
}

func (b Bank) balance(ctx context.Context, key collections.Pair[sdk.AccAddress, string]) (sdkmath.Int, error) {
	has, err := b.Balances.Has(ctx, key)
	if err != nil || !has {
		return sdkmath.ZeroInt(), err
	}
	return b.Balances.Get(ctx, key)
}
