package keeper

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// DefaultEpochDuration is the length of one reward epoch.
const DefaultEpochDuration = 24 * time.Hour

var _ types.Clock = BlockTimeClock{}

// BlockTimeClock derives epochs and timestamps from the block time.
type BlockTimeClock struct {
	EpochDuration time.Duration
}

// NewBlockTimeClock returns a clock with the given epoch length.
func NewBlockTimeClock(epochDuration time.Duration) BlockTimeClock {
	return BlockTimeClock{EpochDuration: epochDuration}
}

// CurrentEpoch returns the number of whole epochs elapsed since the unix epoch.
func (c BlockTimeClock) CurrentEpoch(ctx context.Context) (uint64, error) {
	seconds := uint64(c.EpochDuration / time.Second)
	if seconds == 0 {
		return 0, errors.Errorf("epoch duration %s is shorter than a second", c.EpochDuration)
	}
	ts, err := c.CurrentTimestamp(ctx)
	if err != nil {
		return 0, err
	}
	return ts / seconds, nil
}

// CurrentTimestamp returns the block time in unix seconds.
func (c BlockTimeClock) CurrentTimestamp(ctx context.Context) (uint64, error) {
	unix := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if unix < 0 {
		return 0, errors.Errorf("block time %d is before the unix epoch", unix)
	}
	return uint64(unix), nil
}

// CurrentEpoch returns the reward epoch of the block.
func (k Keeper) CurrentEpoch(ctx context.Context) (uint64, error) {
	return k.clock.CurrentEpoch(ctx)
}
