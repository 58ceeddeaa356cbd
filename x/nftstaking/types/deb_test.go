package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func TestApplyDeb(t *testing.T) {
	testCases := []struct {
		name   string
		score  int64
		deb    int64
		expect int64
	}{
		{name: "neutral", score: 100, deb: types.DebDenomination, expect: 100},
		{name: "below_denomination", score: 100, deb: 1, expect: 100},
		{name: "zero", score: 100, deb: 0, expect: 100},
		{name: "double", score: 1, deb: 2 * types.DebDenomination, expect: 2},
		{name: "floors", score: 3, deb: 150_000, expect: 4},
		{name: "zero_score", score: 0, deb: 5 * types.DebDenomination, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := types.ApplyDeb(sdkmath.NewInt(tc.score), sdkmath.NewInt(tc.deb))
			require.EqualValues(t, tc.expect, got.Int64())
		})
	}
}

func TestApplyDeb_Monotonic(t *testing.T) {
	requireT := require.New(t)
	score := sdkmath.NewInt(777)
	prev := types.ApplyDeb(score, sdkmath.ZeroInt())
	for deb := int64(0); deb <= 4*types.DebDenomination; deb += 997 {
		got := types.ApplyDeb(score, sdkmath.NewInt(deb))
		requireT.True(got.GTE(prev), "deb %d", deb)
		requireT.True(got.GTE(score), "deb %d", deb)
		prev = got
	}
}
