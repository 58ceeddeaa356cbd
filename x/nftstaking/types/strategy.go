package types

import (
	sdkmath "cosmossdk.io/math"
	"github.com/samber/lo"
)

// CodingDivisionFullSetMaxNonce is the last nonce of a coding division full set.
const CodingDivisionFullSetMaxNonce = 10

// Strategy describes how collections of one module type are scored.
type Strategy struct {
	fullSetNonces []uint64
	// tracks the collection never contributes to, whatever the score table says
	zeroTracks []ModuleType
	// tracks scored from the same inventory in addition to All and the module itself
	derivedTracks []ModuleType
}

var strategies = map[ModuleType]Strategy{
	ModuleTypeAll: {},
	ModuleTypeCodingDivisionSfts: {
		fullSetNonces: lo.RangeFrom[uint64](1, CodingDivisionFullSetMaxNonce),
		derivedTracks: []ModuleType{ModuleTypeVestaXDAO},
	},
	ModuleTypeXBunnies:  {},
	ModuleTypeBloodshed: {},
	ModuleTypeNosferatu: {},
	ModuleTypeVestaXDAO: {},
	ModuleTypeSnakesSfts: {
		zeroTracks: []ModuleType{ModuleTypeAll},
	},
	ModuleTypeSharesSfts: {},
}

// StrategyFor returns the scoring strategy of a module type.
func StrategyFor(module ModuleType) (Strategy, error) {
	if err := module.Validate(); err != nil {
		return Strategy{}, err
	}
	return strategies[module], nil
}

// SupportsFullSet reports whether the strategy grants a full-set bonus.
func (s Strategy) SupportsFullSet() bool {
	return len(s.fullSetNonces) > 0
}

// FullSetNonces returns the nonces required for one full set.
func (s Strategy) FullSetNonces() []uint64 {
	return s.fullSetNonces
}

// Tracks returns the score tracks a collection of the given module feeds, All first.
func (s Strategy) Tracks(module ModuleType) []ModuleType {
	tracks := []ModuleType{ModuleTypeAll, module}
	tracks = append(tracks, s.derivedTracks...)
	return lo.Uniq(tracks)
}

// RawScore computes the unboosted score of an inventory on one track.
func (s Strategy) RawScore(track ModuleType, inv Inventory, cfg PoolConfig) sdkmath.Int {
	if lo.Contains(s.zeroTracks, track) {
		return sdkmath.ZeroInt()
	}

	score := sdkmath.ZeroInt()
	inv.Range(func(nonce uint64, quantity sdkmath.Int) bool {
		score = score.Add(cfg.UnitScore(nonce).Mul(quantity))
		return true
	})

	if s.SupportsFullSet() && cfg.FullSetScore.IsPositive() {
		score = score.Add(cfg.FullSetScore.Mul(s.fullSetsOwned(inv)))
	}

	return score
}

func (s Strategy) fullSetsOwned(inv Inventory) sdkmath.Int {
	var sets sdkmath.Int
	for _, nonce := range s.fullSetNonces {
		quantity, ok := inv.Get(nonce)
		if !ok || !quantity.IsPositive() {
			return sdkmath.ZeroInt()
		}
		if sets.IsNil() || quantity.LT(sets) {
			sets = quantity
		}
	}
	return sets
}
