package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ModuleScore is a score on one track.
type ModuleScore struct {
	Module ModuleType  `json:"module"`
	Score  sdkmath.Int `json:"score"`
}

// UserPoolData is a user's position in one collection.
type UserPoolData struct {
	Collection string        `json:"collection"`
	Module     ModuleType    `json:"module"`
	Assets     []AssetAmount `json:"assets"`
	// Scores holds the raw contribution of the collection per track.
	Scores []ModuleScore `json:"scores"`
}

// UnbondingBatch groups the assets queued by one user at one timestamp.
type UnbondingBatch struct {
	Timestamp   uint64        `json:"timestamp"`
	ClaimableAt uint64        `json:"claimable_at"`
	Assets      []AssetAmount `json:"assets"`
}

// UserStakingData is the complete staking state of one user.
type UserStakingData struct {
	PendingRewards sdk.Coins        `json:"pending_rewards"`
	Deb            sdkmath.Int      `json:"deb"`
	Scores         []ModuleScore    `json:"scores"`
	Pools          []UserPoolData   `json:"pools"`
	Unbondings     []UnbondingBatch `json:"unbondings"`
}
