package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name.
	ModuleName = "nftstaking"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName
)

// KVStore keys.
var (
	ParamsKey                 = collections.NewPrefix(0)
	PoolsKey                  = collections.NewPrefix(1)
	BaseScoresKey             = collections.NewPrefix(2)
	NonceScoresKey            = collections.NewPrefix(3)
	FullSetScoresKey          = collections.NewPrefix(4)
	StakedAssetsKey           = collections.NewPrefix(5)
	UserDebsKey               = collections.NewPrefix(6)
	AggregatedScoresKey       = collections.NewPrefix(7)
	UserScoresKey             = collections.NewPrefix(8)
	RawUserScoresKey          = collections.NewPrefix(9)
	CollectionScoresKey       = collections.NewPrefix(10)
	RewardTokensKey           = collections.NewPrefix(11)
	RewardRatesKey            = collections.NewPrefix(12)
	DistributionTimestampsKey = collections.NewPrefix(13)
	RewardCheckpointsKey      = collections.NewPrefix(14)
	PendingRewardsKey         = collections.NewPrefix(15)
	UnbondingsKey             = collections.NewPrefix(16)
)
