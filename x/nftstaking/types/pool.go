package types

import sdkmath "cosmossdk.io/math"

// PoolConfig holds the static weights of one (collection, module) score table.
type PoolConfig struct {
	BaseScore    sdkmath.Int
	NonceScores  map[uint64]sdkmath.Int
	FullSetScore sdkmath.Int
}

// NewPoolConfig returns an empty config with zero scores.
func NewPoolConfig() PoolConfig {
	return PoolConfig{
		BaseScore:    sdkmath.ZeroInt(),
		NonceScores:  map[uint64]sdkmath.Int{},
		FullSetScore: sdkmath.ZeroInt(),
	}
}

// UnitScore returns the per-unit weight of a nonce.
func (c PoolConfig) UnitScore(nonce uint64) sdkmath.Int {
	if score, ok := c.NonceScores[nonce]; ok {
		return score
	}
	return c.BaseScore
}

// Inventory is the read view of one user's holdings in one collection.
type Inventory interface {
	Get(nonce uint64) (sdkmath.Int, bool)
	Range(fn func(nonce uint64, quantity sdkmath.Int) bool)
}
