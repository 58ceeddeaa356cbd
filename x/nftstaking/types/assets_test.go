package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func TestParseAssetDenom(t *testing.T) {
	testCases := []struct {
		name             string
		denom            string
		expectCollection string
		expectNonce      uint64
		expectErr        bool
	}{
		{name: "valid", denom: "bunnies/7", expectCollection: "bunnies", expectNonce: 7},
		{name: "nested_path", denom: "ibc/abc/12", expectCollection: "ibc/abc", expectNonce: 12},
		{name: "no_separator", denom: "bunnies", expectErr: true},
		{name: "empty_nonce", denom: "bunnies/", expectErr: true},
		{name: "empty_collection", denom: "/3", expectErr: true},
		{name: "non_numeric_nonce", denom: "bunnies/x", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			collection, nonce, err := types.ParseAssetDenom(tc.denom)
			if tc.expectErr {
				requireT.ErrorIs(err, types.ErrInvalidCollection)
				return
			}
			requireT.NoError(err)
			requireT.Equal(tc.expectCollection, collection)
			requireT.Equal(tc.expectNonce, nonce)
			requireT.Equal(tc.denom, types.AssetDenom(collection, nonce))
		})
	}
}

func TestAssetAmount_Validate(t *testing.T) {
	requireT := require.New(t)

	requireT.NoError(types.NewAssetAmount("bunnies", 1, sdkmath.NewInt(1)).Validate())
	requireT.ErrorIs(types.NewAssetAmount("bunnies", 1, sdkmath.ZeroInt()).Validate(), types.ErrInvalidInput)
	requireT.ErrorIs(types.NewAssetAmount("bunnies", 1, sdkmath.Int{}).Validate(), types.ErrInvalidInput)
	requireT.ErrorIs(types.NewAssetAmount("", 1, sdkmath.NewInt(1)).Validate(), types.ErrInvalidCollection)
	requireT.ErrorIs(types.NewAssetAmount("a/b", 1, sdkmath.NewInt(1)).Validate(), types.ErrInvalidCollection)
}

func TestAssetsToCoins(t *testing.T) {
	requireT := require.New(t)

	coins := types.AssetsToCoins([]types.AssetAmount{
		types.NewAssetAmount("bunnies", 2, sdkmath.NewInt(1)),
		types.NewAssetAmount("bunnies", 1, sdkmath.NewInt(4)),
		types.NewAssetAmount("bunnies", 2, sdkmath.NewInt(3)),
	})
	requireT.Equal("4bunnies/1,4bunnies/2", coins.String())
}
