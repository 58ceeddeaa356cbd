package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
)

func TestBlockTimeClock(t *testing.T) {
	testCases := []struct {
		name            string
		epochDuration   time.Duration
		blockTime       time.Time
		expectEpoch     uint64
		expectTimestamp uint64
		expectErr       bool
	}{
		{
			name:            "daily",
			epochDuration:   24 * time.Hour,
			blockTime:       time.Unix(3*86_400+5, 0),
			expectEpoch:     3,
			expectTimestamp: 3*86_400 + 5,
		},
		{
			name:            "hourly",
			epochDuration:   time.Hour,
			blockTime:       time.Unix(7_199, 0),
			expectEpoch:     1,
			expectTimestamp: 7_199,
		},
		{
			name:          "sub_second_epoch",
			epochDuration: time.Millisecond,
			blockTime:     time.Unix(10, 0),
			expectErr:     true,
		},
		{
			name:          "before_unix_epoch",
			epochDuration: time.Hour,
			blockTime:     time.Unix(-1, 0),
			expectErr:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			clock := keeper.NewBlockTimeClock(tc.epochDuration)
			ctx := sdk.NewContext(nil, cmtproto.Header{Time: tc.blockTime}, false, log.NewNopLogger())

			epoch, err := clock.CurrentEpoch(ctx)
			if tc.expectErr {
				requireT.Error(err)
				return
			}
			requireT.NoError(err)
			requireT.Equal(tc.expectEpoch, epoch)

			timestamp, err := clock.CurrentTimestamp(ctx)
			requireT.NoError(err)
			requireT.Equal(tc.expectTimestamp, timestamp)
		})
	}
}
