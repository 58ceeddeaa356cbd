package testutil

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// GenesisTime is the block time of a fresh environment. It is aligned to an epoch start.
var GenesisTime = time.Unix(1_700_006_400, 0).UTC()

// Env is a keeper wired to a store backed bank on an in-memory multistore.
type Env struct {
	Ctx       sdk.Context
	Keeper    keeper.Keeper
	Bank      Bank
	Authority string
}

// EnvOption customizes NewEnv.
type EnvOption func(*envConfig)

type envConfig struct {
	logger        log.Logger
	epochDuration time.Duration
	blockTime     time.Time
}

// WithLogger sets the context logger.
func WithLogger(logger log.Logger) EnvOption {
	return func(c *envConfig) { c.logger = logger }
}

// WithEpochDuration sets the reward epoch length.
func WithEpochDuration(d time.Duration) EnvOption {
	return func(c *envConfig) { c.epochDuration = d }
}

// WithBlockTime sets the initial block time.
func WithBlockTime(t time.Time) EnvOption {
	return func(c *envConfig) { c.blockTime = t }
}

// NewEnv builds a keeper with default params on a fresh store.
func NewEnv(opts ...EnvOption) (*Env, error) {
	cfg := envConfig{
		logger:        log.NewNopLogger(),
		epochDuration: keeper.DefaultEpochDuration,
		blockTime:     GenesisTime,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey("bank")

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, cfg.logger, metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, err
	}

	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	bank := NewBank(runtime.NewKVStoreService(bankKey))
	k := keeper.NewKeeper(
		runtime.NewKVStoreService(storeKey),
		authority,
		bank,
		bank,
		addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		keeper.NewBlockTimeClock(cfg.epochDuration),
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: cfg.blockTime}, false, cfg.logger)
	if err := k.SetParams(ctx, types.DefaultParams()); err != nil {
		return nil, err
	}

	return &Env{
		Ctx:       ctx,
		Keeper:    k,
		Bank:      bank,
		Authority: authority,
	}, nil
}

// Advance moves the block time forward.
func (e *Env) Advance(d time.Duration) {
	e.Ctx = e.Ctx.WithBlockTime(e.Ctx.BlockTime().Add(d))
}

// MsgServer returns a message server over the environment keeper.
func (e *Env) MsgServer() keeper.MsgServer {
	return keeper.NewMsgServer(e.Keeper)
}
