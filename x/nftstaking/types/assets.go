package types

import (
	"fmt"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const assetDenomSeparator = "/"

// AssetDenom returns the bank denom representing one nonce of a collection.
func AssetDenom(collection string, nonce uint64) string {
	return collection + assetDenomSeparator + strconv.FormatUint(nonce, 10)
}

// ParseAssetDenom splits an asset denom into collection and nonce.
func ParseAssetDenom(denom string) (string, uint64, error) {
	idx := strings.LastIndex(denom, assetDenomSeparator)
	if idx <= 0 || idx == len(denom)-1 {
		return "", 0, errorsmod.Wrapf(ErrInvalidCollection, "denom %q is not an asset denom", denom)
	}
	nonce, err := strconv.ParseUint(denom[idx+1:], 10, 64)
	if err != nil {
		return "", 0, errorsmod.Wrapf(ErrInvalidCollection, "denom %q: invalid nonce: %s", denom, err)
	}
	return denom[:idx], nonce, nil
}

// ValidateCollection checks that a collection identifier can be carried in asset denoms.
func ValidateCollection(collection string) error {
	if collection == "" {
		return errorsmod.Wrap(ErrInvalidCollection, "collection cannot be empty")
	}
	if strings.Contains(collection, assetDenomSeparator) {
		return errorsmod.Wrapf(ErrInvalidCollection, "collection %q must not contain %q", collection, assetDenomSeparator)
	}
	if err := sdk.ValidateDenom(AssetDenom(collection, 1)); err != nil {
		return errorsmod.Wrapf(ErrInvalidCollection, "collection %q: %s", collection, err)
	}
	return nil
}

// AssetAmount is a quantity of one nonce of a collection.
type AssetAmount struct {
	Collection string      `json:"collection"`
	Nonce      uint64      `json:"nonce"`
	Quantity   sdkmath.Int `json:"quantity"`
}

// NewAssetAmount returns an AssetAmount.
func NewAssetAmount(collection string, nonce uint64, quantity sdkmath.Int) AssetAmount {
	return AssetAmount{Collection: collection, Nonce: nonce, Quantity: quantity}
}

// Coin converts the asset amount to its bank representation.
func (a AssetAmount) Coin() sdk.Coin {
	return sdk.NewCoin(AssetDenom(a.Collection, a.Nonce), a.Quantity)
}

// Validate checks the collection and that the quantity is positive.
func (a AssetAmount) Validate() error {
	if err := ValidateCollection(a.Collection); err != nil {
		return err
	}
	if a.Quantity.IsNil() || !a.Quantity.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidInput, "quantity of %s must be positive", AssetDenom(a.Collection, a.Nonce))
	}
	return nil
}

func (a AssetAmount) String() string {
	return fmt.Sprintf("%s%s", a.Quantity, AssetDenom(a.Collection, a.Nonce))
}

// NonceQuantity is one line of an unbonding request.
type NonceQuantity struct {
	Nonce    uint64      `json:"nonce"`
	Quantity sdkmath.Int `json:"quantity"`
}

// AssetsToCoins converts asset amounts to sorted bank coins, summing repeated denoms.
func AssetsToCoins(assets []AssetAmount) sdk.Coins {
	coins := sdk.NewCoins()
	for _, a := range assets {
		coins = coins.Add(a.Coin())
	}
	return coins
}
