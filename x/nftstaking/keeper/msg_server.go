package keeper

import (
	"context"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// MsgServer serves tx requests for the module.
type MsgServer struct {
	keeper Keeper
}

// NewMsgServer returns a new instance of the MsgServer.
func NewMsgServer(keeper Keeper) MsgServer {
	return MsgServer{
		keeper: keeper,
	}
}

func (ms MsgServer) address(addr string) (sdk.AccAddress, error) {
	bz, err := ms.keeper.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil, err
	}
	return bz, nil
}

func countMsg(operation string, labels ...metrics.Label) {
	telemetry.IncrCounterWithLabels([]string{types.ModuleName, "msg", operation}, 1, labels)
}

// Stake stakes assets of one collection.
func (ms MsgServer) Stake(goCtx context.Context, req *types.MsgStake) (*types.EmptyResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "stake")

	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	user, err := ms.address(req.Sender)
	if err != nil {
		return nil, err
	}
	if err := ms.keeper.Stake(goCtx, user, req.Assets); err != nil {
		return nil, err
	}
	countMsg("stake", telemetry.NewLabel(types.AttributeKeyCollection, req.Assets[0].Collection))
	return &types.EmptyResponse{}, nil
}

// StartUnbonding moves staked assets into the unbonding queue.
func (ms MsgServer) StartUnbonding(goCtx context.Context, req *types.MsgStartUnbonding) (*types.EmptyResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "start_unbonding")

	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	user, err := ms.address(req.Sender)
	if err != nil {
		return nil, err
	}
	if err := ms.keeper.StartUnbonding(goCtx, user, req.Collection, req.Items); err != nil {
		return nil, err
	}
	countMsg("start_unbonding", telemetry.NewLabel(types.AttributeKeyCollection, req.Collection))
	return &types.EmptyResponse{}, nil
}

// ClaimUnbonded withdraws every matured unbonding batch.
func (ms MsgServer) ClaimUnbonded(
	goCtx context.Context, req *types.MsgClaimUnbonded,
) (*types.MsgClaimUnbondedResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "claim_unbonded")

	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	user, err := ms.address(req.Sender)
	if err != nil {
		return nil, err
	}
	assets, err := ms.keeper.ClaimUnbonded(goCtx, user)
	if err != nil {
		return nil, err
	}
	countMsg("claim_unbonded")
	return &types.MsgClaimUnbondedResponse{Assets: assets}, nil
}

// ClaimRewards pays out every pending reward.
func (ms MsgServer) ClaimRewards(goCtx context.Context, req *types.MsgClaimRewards) (*types.MsgClaimRewardsResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "claim_rewards")

	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	user, err := ms.address(req.Sender)
	if err != nil {
		return nil, err
	}
	rewards, err := ms.keeper.ClaimRewards(goCtx, user)
	if err != nil {
		return nil, err
	}
	countMsg("claim_rewards")
	return &types.MsgClaimRewardsResponse{Rewards: rewards}, nil
}

// DistributeReward is a governance operation that funds one epoch of a reward track.
func (ms MsgServer) DistributeReward(goCtx context.Context, req *types.MsgDistributeReward) (*types.EmptyResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "distribute_reward")

	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.DistributeReward(goCtx, req.Authority, req.Module, req.Amount); err != nil {
		return nil, err
	}
	countMsg(
		"distribute_reward",
		telemetry.NewLabel(types.AttributeKeyModule, req.Module.String()),
		telemetry.NewLabel(types.AttributeKeyToken, req.Amount.Denom),
	)
	return &types.EmptyResponse{}, nil
}

// UpdateDeb is a governance operation that sets the boost of a user.
func (ms MsgServer) UpdateDeb(goCtx context.Context, req *types.MsgUpdateDeb) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	user, err := ms.address(req.Address)
	if err != nil {
		return nil, err
	}
	if err := ms.keeper.UpdateDeb(goCtx, req.Authority, user, req.Deb); err != nil {
		return nil, err
	}
	countMsg("update_deb")
	return &types.EmptyResponse{}, nil
}

// RegisterPool is a governance operation that maps a collection to a module type.
func (ms MsgServer) RegisterPool(goCtx context.Context, req *types.MsgRegisterPool) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.RegisterPool(goCtx, req.Authority, req.Collection, req.Module); err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}

// SetBaseScore is a governance operation that sets the default per-unit score.
func (ms MsgServer) SetBaseScore(goCtx context.Context, req *types.MsgSetBaseScore) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.SetBaseScore(goCtx, req.Authority, req.Collection, req.Module, req.Score); err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}

// SetNonceScore is a governance operation that overrides the score of one nonce.
func (ms MsgServer) SetNonceScore(goCtx context.Context, req *types.MsgSetNonceScore) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	err := ms.keeper.SetNonceScore(goCtx, req.Authority, req.Collection, req.Nonce, req.Module, req.Score)
	if err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}

// SetFullSetScore is a governance operation that sets the full set bonus.
func (ms MsgServer) SetFullSetScore(goCtx context.Context, req *types.MsgSetFullSetScore) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.SetFullSetScore(goCtx, req.Authority, req.Collection, req.Module, req.Score); err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}

// RegisterRewardToken is a governance operation that allows a token on a module.
func (ms MsgServer) RegisterRewardToken(
	goCtx context.Context, req *types.MsgRegisterRewardToken,
) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.RegisterRewardToken(goCtx, req.Authority, req.Token, req.Module); err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}

// UpdateParams is a governance operation that replaces the module params.
func (ms MsgServer) UpdateParams(goCtx context.Context, req *types.MsgUpdateParams) (*types.EmptyResponse, error) {
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.keeper.UpdateParams(goCtx, req.Authority, req.Params); err != nil {
		return nil, err
	}
	return &types.EmptyResponse{}, nil
}
