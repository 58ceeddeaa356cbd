package types

import sdkmath "cosmossdk.io/math"

// DebDenomination is the DEB value meaning a 1.0x boost.
const DebDenomination = 100_000

// DefaultDeb returns the boost applied to users without a stored DEB.
func DefaultDeb() sdkmath.Int {
	return sdkmath.NewInt(DebDenomination)
}

// ApplyDeb boosts a raw score. Values at or below the denomination leave the score unchanged.
func ApplyDeb(score, deb sdkmath.Int) sdkmath.Int {
	denom := DefaultDeb()
	if deb.LTE(denom) {
		return score
	}
	return score.Mul(deb).Quo(denom)
}
