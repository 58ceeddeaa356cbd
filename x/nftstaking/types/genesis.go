package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/samber/lo"
)

// GenesisState defines the module genesis state. Collection scores are carried as they
// were committed, user and aggregated scores are summed from them on import. A position
// without collection scores scores zero until its next stake or unbond.
type GenesisState struct {
	Params            Params                    `json:"params"`
	Pools             []PoolRegistration        `json:"pools"`
	BaseScores        []ScoreEntry              `json:"base_scores"`
	NonceScores       []ScoreEntry              `json:"nonce_scores"`
	FullSetScores     []ScoreEntry              `json:"full_set_scores"`
	RewardTokens      []RewardTokenRegistration `json:"reward_tokens"`
	StakedAssets      []StakedAssetEntry        `json:"staked_assets"`
	UserDebs          []UserDebEntry            `json:"user_debs"`
	CollectionScores  []CollectionScoreEntry    `json:"collection_scores"`
	RewardRates       []RewardRateEntry         `json:"reward_rates"`
	RewardCheckpoints []RewardCheckpointEntry   `json:"reward_checkpoints"`
	PendingRewards    []PendingRewardEntry      `json:"pending_rewards"`
	Unbondings        []UnbondingEntry          `json:"unbondings"`
}

// PoolRegistration maps a collection to its module type.
type PoolRegistration struct {
	Collection string     `json:"collection"`
	Module     ModuleType `json:"module"`
}

// ScoreEntry is one score table value. Nonce is only meaningful for per-nonce overrides.
type ScoreEntry struct {
	Collection string      `json:"collection"`
	Module     ModuleType  `json:"module"`
	Nonce      uint64      `json:"nonce,omitempty"`
	Score      sdkmath.Int `json:"score"`
}

// RewardTokenRegistration allows a token to be distributed against a module.
type RewardTokenRegistration struct {
	Token  string     `json:"token"`
	Module ModuleType `json:"module"`
}

// StakedAssetEntry is one staked (user, collection, nonce) quantity.
type StakedAssetEntry struct {
	Address    string      `json:"address"`
	Collection string      `json:"collection"`
	Nonce      uint64      `json:"nonce"`
	Quantity   sdkmath.Int `json:"quantity"`
}

// UserDebEntry is the boost of one user.
type UserDebEntry struct {
	Address string      `json:"address"`
	Deb     sdkmath.Int `json:"deb"`
}

// CollectionScoreEntry is the raw contribution of one staked collection to a user's
// score on a track.
type CollectionScoreEntry struct {
	Module     ModuleType  `json:"module"`
	Address    string      `json:"address"`
	Collection string      `json:"collection"`
	Score      sdkmath.Int `json:"score"`
}

// RewardRateEntry is a distributed epoch of a (module, token) track.
type RewardRateEntry struct {
	Module    ModuleType  `json:"module"`
	Token     string      `json:"token"`
	Epoch     uint64      `json:"epoch"`
	Rate      sdkmath.Int `json:"rate"`
	Timestamp uint64      `json:"timestamp"`
}

// RewardCheckpointEntry is the first unsecured epoch of a (module, user, token).
type RewardCheckpointEntry struct {
	Module  ModuleType `json:"module"`
	Address string     `json:"address"`
	Token   string     `json:"token"`
	Epoch   uint64     `json:"epoch"`
}

// PendingRewardEntry is a secured, claimable reward balance.
type PendingRewardEntry struct {
	Address string   `json:"address"`
	Amount  sdk.Coin `json:"amount"`
}

// UnbondingEntry is one line of an unbonding batch.
type UnbondingEntry struct {
	Address    string      `json:"address"`
	Timestamp  uint64      `json:"timestamp"`
	Collection string      `json:"collection"`
	Nonce      uint64      `json:"nonce"`
	Quantity   sdkmath.Int `json:"quantity"`
}

// DefaultGenesisState returns genesis state with default values.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params:            DefaultParams(),
		Pools:             []PoolRegistration{},
		BaseScores:        []ScoreEntry{},
		NonceScores:       []ScoreEntry{},
		FullSetScores:     []ScoreEntry{},
		RewardTokens:      []RewardTokenRegistration{},
		StakedAssets:      []StakedAssetEntry{},
		UserDebs:          []UserDebEntry{},
		CollectionScores:  []CollectionScoreEntry{},
		RewardRates:       []RewardRateEntry{},
		RewardCheckpoints: []RewardCheckpointEntry{},
		PendingRewards:    []PendingRewardEntry{},
		Unbondings:        []UnbondingEntry{},
	}
}

// String returns the JSON form of the genesis state.
func (m *GenesisState) String() string {
	bz, err := json.Marshal(m)
	if err != nil {
		return err.Error()
	}
	return string(bz)
}

// Validate validates the genesis state.
func (m *GenesisState) Validate() error {
	if err := m.Params.ValidateBasic(); err != nil {
		return err
	}

	pools := make(map[string]ModuleType, len(m.Pools))
	for i, pool := range m.Pools {
		if err := ValidateCollection(pool.Collection); err != nil {
			return errorsmod.Wrapf(err, "pool %d", i)
		}
		if err := pool.Module.Validate(); err != nil {
			return errorsmod.Wrapf(err, "pool %d", i)
		}
		if _, found := pools[pool.Collection]; found {
			return errorsmod.Wrapf(ErrCollectionAlreadyRegistered, "pool %d: %s", i, pool.Collection)
		}
		pools[pool.Collection] = pool.Module
	}

	if err := validateScoreEntries("base score", m.BaseScores, pools, false); err != nil {
		return err
	}
	if err := validateScoreEntries("nonce score", m.NonceScores, pools, true); err != nil {
		return err
	}
	if err := validateScoreEntries("full set score", m.FullSetScores, pools, false); err != nil {
		return err
	}

	for i, reg := range m.RewardTokens {
		if err := sdk.ValidateDenom(reg.Token); err != nil {
			return errorsmod.Wrapf(ErrInvalidRewardToken, "reward token %d: %s", i, err)
		}
		if err := reg.Module.Validate(); err != nil {
			return errorsmod.Wrapf(err, "reward token %d", i)
		}
	}
	if dups := lo.FindDuplicates(m.RewardTokens); len(dups) > 0 {
		return errorsmod.Wrapf(ErrInvalidInput, "duplicate reward token registration %s/%s", dups[0].Token, dups[0].Module)
	}

	for i, entry := range m.StakedAssets {
		if err := validateAddress("staker", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "staked asset %d", i)
		}
		if _, found := pools[entry.Collection]; !found {
			return errorsmod.Wrapf(ErrInvalidCollection, "staked asset %d: %s is not registered", i, entry.Collection)
		}
		if entry.Quantity.IsNil() || !entry.Quantity.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidInput, "staked asset %d: quantity must be positive", i)
		}
	}
	if dups := lo.FindDuplicatesBy(m.StakedAssets, func(e StakedAssetEntry) string {
		return fmt.Sprintf("%s/%s/%d", e.Address, e.Collection, e.Nonce)
	}); len(dups) > 0 {
		return errorsmod.Wrapf(ErrInvalidInput, "duplicate staked asset %s %s", dups[0].Address, AssetDenom(dups[0].Collection, dups[0].Nonce))
	}

	for i, entry := range m.UserDebs {
		if err := validateAddress("deb", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "user deb %d", i)
		}
		if err := validateScore("deb", entry.Deb); err != nil {
			return errorsmod.Wrapf(err, "user deb %d", i)
		}
	}

	if err := validateCollectionScores(m.CollectionScores, m.StakedAssets, pools); err != nil {
		return err
	}

	registered := lo.SliceToMap(m.RewardTokens, func(r RewardTokenRegistration) (RewardTokenRegistration, struct{}) {
		return r, struct{}{}
	})
	for i, entry := range m.RewardRates {
		if _, found := registered[RewardTokenRegistration{Token: entry.Token, Module: entry.Module}]; !found {
			return errorsmod.Wrapf(ErrInvalidRewardToken, "reward rate %d: %s is not registered for %s", i, entry.Token, entry.Module)
		}
		if err := validateScore("rate", entry.Rate); err != nil {
			return errorsmod.Wrapf(err, "reward rate %d", i)
		}
	}

	for i, entry := range m.RewardCheckpoints {
		if err := validateAddress("checkpoint", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "reward checkpoint %d", i)
		}
		if err := entry.Module.Validate(); err != nil {
			return errorsmod.Wrapf(err, "reward checkpoint %d", i)
		}
	}

	for i, entry := range m.PendingRewards {
		if err := validateAddress("pending reward", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "pending reward %d", i)
		}
		if err := entry.Amount.Validate(); err != nil {
			return errorsmod.Wrapf(ErrInvalidInput, "pending reward %d: %s", i, err)
		}
	}

	for i, entry := range m.Unbondings {
		if err := validateAddress("unbonding", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "unbonding %d", i)
		}
		if err := ValidateCollection(entry.Collection); err != nil {
			return errorsmod.Wrapf(err, "unbonding %d", i)
		}
		if entry.Quantity.IsNil() || !entry.Quantity.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidInput, "unbonding %d: quantity must be positive", i)
		}
	}

	return nil
}

func validateCollectionScores(entries []CollectionScoreEntry, staked []StakedAssetEntry, pools map[string]ModuleType) error {
	positionKey := func(address, collection string) string {
		return address + "/" + collection
	}
	positions := lo.SliceToMap(staked, func(e StakedAssetEntry) (string, struct{}) {
		return positionKey(e.Address, e.Collection), struct{}{}
	})

	for i, entry := range entries {
		if err := validateAddress("collection score", entry.Address); err != nil {
			return errorsmod.Wrapf(err, "collection score %d", i)
		}
		module, found := pools[entry.Collection]
		if !found {
			return errorsmod.Wrapf(ErrInvalidCollection, "collection score %d: %s is not registered", i, entry.Collection)
		}
		strategy, err := StrategyFor(module)
		if err != nil {
			return errorsmod.Wrapf(err, "collection score %d", i)
		}
		if !lo.Contains(strategy.Tracks(module), entry.Module) {
			return errorsmod.Wrapf(ErrInvalidModuleType, "collection score %d: %s does not score on %s", i, entry.Collection, entry.Module)
		}
		if err := validateScore("score", entry.Score); err != nil {
			return errorsmod.Wrapf(err, "collection score %d", i)
		}
		if _, found := positions[positionKey(entry.Address, entry.Collection)]; !found && entry.Score.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidInput, "collection score %d: %s has no staked assets in %s", i, entry.Address, entry.Collection)
		}
	}
	if dups := lo.FindDuplicatesBy(entries, func(e CollectionScoreEntry) string {
		return fmt.Sprintf("%d/%s/%s", e.Module, e.Address, e.Collection)
	}); len(dups) > 0 {
		return errorsmod.Wrapf(ErrInvalidInput, "duplicate collection score %s %s on %s", dups[0].Address, dups[0].Collection, dups[0].Module)
	}
	return nil
}

func validateScoreEntries(kind string, entries []ScoreEntry, pools map[string]ModuleType, withNonce bool) error {
	for i, entry := range entries {
		if _, found := pools[entry.Collection]; !found {
			return errorsmod.Wrapf(ErrInvalidCollection, "%s %d: %s is not registered", kind, i, entry.Collection)
		}
		if err := entry.Module.Validate(); err != nil {
			return errorsmod.Wrapf(err, "%s %d", kind, i)
		}
		if err := validateScore("score", entry.Score); err != nil {
			return errorsmod.Wrapf(err, "%s %d", kind, i)
		}
	}
	dups := lo.FindDuplicatesBy(entries, func(e ScoreEntry) string {
		if withNonce {
			return fmt.Sprintf("%s/%d/%d", e.Collection, e.Module, e.Nonce)
		}
		return fmt.Sprintf("%s/%d", e.Collection, e.Module)
	})
	if len(dups) > 0 {
		return errorsmod.Wrapf(ErrInvalidInput, "duplicate %s for %s/%s", kind, dups[0].Collection, dups[0].Module)
	}
	return nil
}
