package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

func TestUpdateParams(t *testing.T) {
	testCases := []struct {
		name      string
		authority func(env string) string
		params    types.Params
		expectErr error
	}{
		{
			name:      "valid",
			authority: func(env string) string { return env },
			params:    types.Params{UnbondingTimePenalty: 10, PrimaryRewardToken: "ucore"},
		},
		{
			name:      "invalid_authority",
			authority: func(string) string { return newAddr().String() },
			params:    types.DefaultParams(),
			expectErr: types.ErrInvalidAuthority,
		},
		{
			name:      "invalid_primary_token",
			authority: func(env string) string { return env },
			params:    types.Params{PrimaryRewardToken: "1"},
			expectErr: types.ErrInvalidParam,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			env := newEnv(t)

			err := env.Keeper.UpdateParams(env.Ctx, tc.authority(env.Authority), tc.params)
			params, getErr := env.Keeper.GetParams(env.Ctx)
			requireT.NoError(getErr)

			if tc.expectErr != nil {
				requireT.ErrorIs(err, tc.expectErr)
				requireT.Equal(types.DefaultParams(), params)
				return
			}
			requireT.NoError(err)
			requireT.Equal(tc.params, params)
		})
	}
}
