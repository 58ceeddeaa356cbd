package simcmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// Report is the state left by a scenario.
type Report struct {
	Name string `json:"name"`
	// Epoch is the reward epoch of the final block time.
	Epoch uint64 `json:"epoch"`
	// Scores holds the aggregated score of every track.
	Scores        []types.ModuleScore `json:"scores"`
	ModuleBalance sdk.Coins           `json:"module_balance"`
	Users         []UserReport        `json:"users"`
}

// UserReport is the final state of one scenario user.
type UserReport struct {
	Name    string                `json:"name"`
	Address string                `json:"address"`
	Balance sdk.Coins             `json:"balance"`
	Staking types.UserStakingData `json:"staking"`
}

func (r *runner) report(name string) (*Report, error) {
	ctx := r.env.Ctx
	k := r.env.Keeper

	epoch, err := k.CurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := k.GetGeneralStakingData(ctx)
	if err != nil {
		return nil, err
	}
	moduleBalance, err := r.env.Bank.ModuleBalance(ctx, types.ModuleName)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Name:          name,
		Epoch:         epoch,
		Scores:        scores,
		ModuleBalance: moduleBalance,
		Users:         make([]UserReport, 0, len(r.users)),
	}
	for _, userName := range r.users {
		addr, err := r.user(userName)
		if err != nil {
			return nil, err
		}
		balance, err := r.env.Bank.Balance(ctx, addr)
		if err != nil {
			return nil, err
		}
		data, err := k.GetUserStakingData(ctx, addr)
		if err != nil {
			return nil, err
		}
		report.Users = append(report.Users, UserReport{
			Name:    userName,
			Address: addr.String(),
			Balance: balance,
			Staking: data,
		})
	}
	return report, nil
}
