package keeper

import (
	"fmt"
	"strings"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	deterministicmap "github.com/tokenize-x/nft-staking/pkg/deterministic_map"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// RegisterInvariants registers the module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "aggregated-score", AggregatedScoreInvariant(k))
	ir.RegisterRoute(types.ModuleName, "raw-score", RawScoreInvariant(k))
}

// AggregatedScoreInvariant checks that every aggregated score equals the sum of the user
// scores of its module.
func AggregatedScoreInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sums := deterministicmap.New[types.ModuleType, sdkmath.Int]()
		err := k.UserScores.Walk(ctx, nil, func(key collections.Pair[types.ModuleType, sdk.AccAddress], score sdkmath.Int) (bool, error) {
			sums.Update(key.K1(), func(current sdkmath.Int, found bool) sdkmath.Int {
				if !found {
					return score
				}
				return current.Add(score)
			})
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "aggregated-score", err.Error()), true
		}

		var msgs []string
		for _, module := range types.AllModuleTypes() {
			aggregated, err := k.GetAggregatedScore(ctx, module)
			if err != nil {
				return sdk.FormatInvariant(types.ModuleName, "aggregated-score", err.Error()), true
			}
			sum, found := sums.Get(module)
			if !found {
				sum = sdkmath.ZeroInt()
			}
			if !aggregated.Equal(sum) {
				msgs = append(msgs, fmt.Sprintf("%s: aggregated %s, sum of user scores %s", module, aggregated, sum))
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "aggregated-score", strings.Join(msgs, "\n")), len(msgs) > 0
	}
}

// RawScoreInvariant checks that every raw user score equals the sum of its collection
// contributions.
func RawScoreInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sums := deterministicmap.New[string, sdkmath.Int]()
		err := k.CollectionScores.Walk(
			ctx, nil,
			func(key collections.Triple[types.ModuleType, sdk.AccAddress, string], score sdkmath.Int) (bool, error) {
				sums.Update(fmt.Sprintf("%s/%s", key.K1(), key.K2()), func(current sdkmath.Int, found bool) sdkmath.Int {
					if !found {
						return score
					}
					return current.Add(score)
				})
				return false, nil
			},
		)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "raw-score", err.Error()), true
		}

		var msgs []string
		err = k.RawUserScores.Walk(ctx, nil, func(key collections.Pair[types.ModuleType, sdk.AccAddress], raw sdkmath.Int) (bool, error) {
			id := fmt.Sprintf("%s/%s", key.K1(), key.K2())
			sum, ok := sums.Get(id)
			if !ok {
				sum = sdkmath.ZeroInt()
			}
			if !raw.Equal(sum) {
				msgs = append(msgs, fmt.Sprintf("%s: raw %s, sum of collection scores %s", id, raw, sum))
			}
			sums.Delete(id)
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "raw-score", err.Error()), true
		}
		sums.Range(func(id string, sum sdkmath.Int) bool {
			if sum.IsPositive() {
				msgs = append(msgs, fmt.Sprintf("%s: missing raw score, sum of collection scores %s", id, sum))
			}
			return true
		})

		return sdk.FormatInvariant(types.ModuleName, "raw-score", strings.Join(msgs, "\n")), len(msgs) > 0
	}
}
