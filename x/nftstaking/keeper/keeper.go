package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/collections"
	collcodec "cosmossdk.io/collections/codec"
	addresscodec "cosmossdk.io/core/address"
	sdkstore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

var moduleTypeKey = collcodec.NewInt32Key[types.ModuleType]()

// Keeper of the module.
type Keeper struct {
	storeService sdkstore.KVStoreService
	authority    string
	addressCodec addresscodec.Codec
	clock        types.Clock

	bankKeeper types.BankKeeper

	// collections
	Schema collections.Schema
	Params collections.Item[types.Params]

	// pool registry and score tables
	Pools         collections.Map[string, types.ModuleType]
	BaseScores    collections.Map[collections.Pair[string, types.ModuleType], sdkmath.Int]
	NonceScores   collections.Map[collections.Triple[string, types.ModuleType, uint64], sdkmath.Int]
	FullSetScores collections.Map[collections.Pair[string, types.ModuleType], sdkmath.Int]

	// inventory and boost
	StakedAssets collections.Map[collections.Triple[sdk.AccAddress, string, uint64], sdkmath.Int]
	UserDebs     collections.Map[sdk.AccAddress, sdkmath.Int]

	// score ledger
	AggregatedScores collections.Map[types.ModuleType, sdkmath.Int]
	UserScores       collections.Map[collections.Pair[types.ModuleType, sdk.AccAddress], sdkmath.Int]
	RawUserScores    collections.Map[collections.Pair[types.ModuleType, sdk.AccAddress], sdkmath.Int]
	CollectionScores collections.Map[collections.Triple[types.ModuleType, sdk.AccAddress, string], sdkmath.Int]

	// rewards
	RewardTokens           collections.KeySet[collections.Pair[string, types.ModuleType]]
	RewardRates            collections.Map[collections.Triple[types.ModuleType, string, uint64], sdkmath.Int]
	DistributionTimestamps collections.Map[collections.Triple[types.ModuleType, string, uint64], uint64]
	RewardCheckpoints      collections.Map[collections.Triple[types.ModuleType, sdk.AccAddress, string], uint64]
	PendingRewards         collections.Map[collections.Pair[sdk.AccAddress, string], sdkmath.Int]

	// unbonding queue: (user, timestamp, collection, nonce) -> quantity
	Unbondings collections.Map[collections.Quad[sdk.AccAddress, uint64, string, uint64], sdkmath.Int]
}

// NewKeeper returns a new keeper object providing storage options required by the module.
func NewKeeper(
	storeService sdkstore.KVStoreService,
	authority string,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	addressCodec addresscodec.Codec,
	clock types.Clock,
) Keeper {
	// staked assets and reward funds are held by the module account
	if addr := accountKeeper.GetModuleAddress(types.ModuleName); addr == nil {
		panic(fmt.Sprintf("the x/%s module account has not been set", types.ModuleName))
	}

	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService: storeService,
		authority:    authority,
		addressCodec: addressCodec,
		clock:        clock,
		bankKeeper:   bankKeeper,

		Params: collections.NewItem(
			sb,
			types.ParamsKey,
			"params",
			types.ParamsValue,
		),
		Pools: collections.NewMap(
			sb,
			types.PoolsKey,
			"pools",
			collections.StringKey,
			collcodec.KeyToValueCodec(moduleTypeKey),
		),
		BaseScores: collections.NewMap(
			sb,
			types.BaseScoresKey,
			"base_scores",
			collections.PairKeyCodec(collections.StringKey, moduleTypeKey),
			sdk.IntValue,
		),
		NonceScores: collections.NewMap(
			sb,
			types.NonceScoresKey,
			"nonce_scores",
			collections.TripleKeyCodec(collections.StringKey, moduleTypeKey, collections.Uint64Key),
			sdk.IntValue,
		),
		FullSetScores: collections.NewMap(
			sb,
			types.FullSetScoresKey,
			"full_set_scores",
			collections.PairKeyCodec(collections.StringKey, moduleTypeKey),
			sdk.IntValue,
		),
		StakedAssets: collections.NewMap(
			sb,
			types.StakedAssetsKey,
			"staked_assets",
			collections.TripleKeyCodec(sdk.AccAddressKey, collections.StringKey, collections.Uint64Key),
			sdk.IntValue,
		),
		UserDebs: collections.NewMap(
			sb,
			types.UserDebsKey,
			"user_debs",
			sdk.AccAddressKey,
			sdk.IntValue,
		),
		AggregatedScores: collections.NewMap(
			sb,
			types.AggregatedScoresKey,
			"aggregated_scores",
			moduleTypeKey,
			sdk.IntValue,
		),
		UserScores: collections.NewMap(
			sb,
			types.UserScoresKey,
			"user_scores",
			collections.PairKeyCodec(moduleTypeKey, sdk.AccAddressKey),
			sdk.IntValue,
		),
		RawUserScores: collections.NewMap(
			sb,
			types.RawUserScoresKey,
			"raw_user_scores",
			collections.PairKeyCodec(moduleTypeKey, sdk.AccAddressKey),
			sdk.IntValue,
		),
		CollectionScores: collections.NewMap(
			sb,
			types.CollectionScoresKey,
			"collection_scores",
			collections.TripleKeyCodec(moduleTypeKey, sdk.AccAddressKey, collections.StringKey),
			sdk.IntValue,
		),
		RewardTokens: collections.NewKeySet(
			sb,
			types.RewardTokensKey,
			"reward_tokens",
			collections.PairKeyCodec(collections.StringKey, moduleTypeKey),
		),
		RewardRates: collections.NewMap(
			sb,
			types.RewardRatesKey,
			"reward_rates",
			collections.TripleKeyCodec(moduleTypeKey, collections.StringKey, collections.Uint64Key),
			sdk.IntValue,
		),
		DistributionTimestamps: collections.NewMap(
			sb,
			types.DistributionTimestampsKey,
			"distribution_timestamps",
			collections.TripleKeyCodec(moduleTypeKey, collections.StringKey, collections.Uint64Key),
			collections.Uint64Value,
		),
		RewardCheckpoints: collections.NewMap(
			sb,
			types.RewardCheckpointsKey,
			"reward_checkpoints",
			collections.TripleKeyCodec(moduleTypeKey, sdk.AccAddressKey, collections.StringKey),
			collections.Uint64Value,
		),
		PendingRewards: collections.NewMap(
			sb,
			types.PendingRewardsKey,
			"pending_rewards",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey),
			sdk.IntValue,
		),
		Unbondings: collections.NewMap(
			sb,
			types.UnbondingsKey,
			"unbondings",
			collections.QuadKeyCodec(sdk.AccAddressKey, collections.Uint64Key, collections.StringKey, collections.Uint64Key),
			sdk.IntValue,
		),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the module authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns the module logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func getOrZero[K any](ctx context.Context, m collections.Map[K, sdkmath.Int], key K) (sdkmath.Int, error) {
	value, err := m.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		return sdkmath.ZeroInt(), nil
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	return value, nil
}

// setOrRemove keeps zero values out of the store.
func setOrRemove[K any](ctx context.Context, m collections.Map[K, sdkmath.Int], key K, value sdkmath.Int) error {
	if value.IsZero() {
		return m.Remove(ctx, key)
	}
	return m.Set(ctx, key, value)
}

// atomic runs fn on a cache context and writes the cache back only when fn succeeds.
func (k Keeper) atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	cacheCtx, writeCache := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil { //nolint:contextcheck // this is correct context passing
		return err
	}
	writeCache()
	return nil
}
