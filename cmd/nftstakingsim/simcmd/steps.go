package simcmd

import (
	"strings"

	"cosmossdk.io/log"
	"github.com/cometbft/cometbft/crypto/tmhash"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
	"github.com/tokenize-x/nft-staking/x/nftstaking/testutil"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// Step actions.
const (
	actionStake         = "stake"
	actionUnbond        = "unbond"
	actionClaimUnbonded = "claim_unbonded"
	actionClaimRewards  = "claim_rewards"
	actionDistribute    = "distribute"
	actionDeb           = "deb"
	actionAdvance       = "advance"
)

type runner struct {
	env    *testutil.Env
	logger log.Logger
	// users in order of first appearance
	users []string
}

func newRunner(env *testutil.Env, logger log.Logger) *runner {
	return &runner{env: env, logger: logger}
}

// user returns the deterministic address of a named scenario user.
func (r *runner) user(name string) (sdk.AccAddress, error) {
	if name == "" {
		return nil, errors.New("user is required")
	}
	if !lo.Contains(r.users, name) {
		r.users = append(r.users, name)
	}
	return sdk.AccAddress(tmhash.SumTruncated([]byte(name))), nil
}

// run executes one step. When the step sets expect_error, the action must fail with an
// error containing that text.
func (r *runner) run(step map[string]any) error {
	action := cast.ToString(step["action"])
	expectErr := cast.ToString(step["expect_error"])

	err := r.exec(action, step)
	switch {
	case expectErr == "":
		return err
	case err == nil:
		return errors.Errorf("expected error %q", expectErr)
	case !strings.Contains(err.Error(), expectErr):
		return errors.Wrapf(err, "expected error %q, got", expectErr)
	default:
		r.logger.Debug("Step failed as expected", "action", action, "error", err)
		return nil
	}
}

func (r *runner) exec(action string, step map[string]any) error {
	ctx := r.env.Ctx
	k := r.env.Keeper

	switch action {
	case actionStake:
		user, err := r.user(cast.ToString(step["user"]))
		if err != nil {
			return err
		}
		assets, err := parseAssets(cast.ToString(step["collection"]), step["items"])
		if err != nil {
			return err
		}
		// assets are minted to the user first, the staker owns what it stakes
		if err := r.env.Bank.Mint(ctx, user, types.AssetsToCoins(assets)); err != nil {
			return err
		}
		return k.Stake(ctx, user, assets)
	case actionUnbond:
		user, err := r.user(cast.ToString(step["user"]))
		if err != nil {
			return err
		}
		collection := cast.ToString(step["collection"])
		assets, err := parseAssets(collection, step["items"])
		if err != nil {
			return err
		}
		items := lo.Map(assets, func(a types.AssetAmount, _ int) types.NonceQuantity {
			return types.NonceQuantity{Nonce: a.Nonce, Quantity: a.Quantity}
		})
		return k.StartUnbonding(ctx, user, collection, items)
	case actionClaimUnbonded:
		user, err := r.user(cast.ToString(step["user"]))
		if err != nil {
			return err
		}
		claimed, err := k.ClaimUnbonded(ctx, user)
		if err != nil {
			return err
		}
		r.logger.Info("Claimed unbonded assets", "user", step["user"], "assets", claimed.String())
		return nil
	case actionClaimRewards:
		user, err := r.user(cast.ToString(step["user"]))
		if err != nil {
			return err
		}
		rewards, err := k.ClaimRewards(ctx, user)
		if err != nil {
			return err
		}
		r.logger.Info("Claimed rewards", "user", step["user"], "rewards", rewards.String())
		return nil
	case actionDistribute:
		module, err := parseModule(cast.ToString(step["module"]))
		if err != nil {
			return err
		}
		amount, err := sdk.ParseCoinNormalized(cast.ToString(step["amount"]))
		if err != nil {
			return errors.Wrap(err, "invalid amount")
		}
		authority := sdk.MustAccAddressFromBech32(r.env.Authority)
		if err := r.env.Bank.Mint(ctx, authority, sdk.NewCoins(amount)); err != nil {
			return err
		}
		return k.DistributeReward(ctx, r.env.Authority, module, amount)
	case actionDeb:
		user, err := r.user(cast.ToString(step["user"]))
		if err != nil {
			return err
		}
		deb, err := parseInt(step["deb"])
		if err != nil {
			return errors.Wrap(err, "invalid deb")
		}
		return k.UpdateDeb(ctx, r.env.Authority, user, deb)
	case actionAdvance:
		d, err := cast.ToDurationE(step["duration"])
		if err != nil {
			return errors.Wrap(err, "invalid duration")
		}
		if d < 0 {
			return errors.Errorf("negative duration %s", d)
		}
		r.env.Advance(d)
		return nil
	default:
		return errors.Errorf("unknown action %q", action)
	}
}

func parseAssets(collection string, raw any) ([]types.AssetAmount, error) {
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid items")
	}
	assets := make([]types.AssetAmount, 0, len(items))
	for i, item := range items {
		fields, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		nonce, err := cast.ToUint64E(fields["nonce"])
		if err != nil {
			return nil, errors.Wrapf(err, "item %d: nonce", i)
		}
		quantity, err := parseInt(fields["quantity"])
		if err != nil {
			return nil, errors.Wrapf(err, "item %d: quantity", i)
		}
		asset := types.NewAssetAmount(collection, nonce, quantity)
		if err := asset.Validate(); err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (r *runner) checkInvariants() error {
	for _, invariant := range []sdk.Invariant{
		keeper.AggregatedScoreInvariant(r.env.Keeper),
		keeper.RawScoreInvariant(r.env.Keeper),
	} {
		if msg, broken := invariant(r.env.Ctx); broken {
			return errors.Errorf("invariant broken: %s", msg)
		}
	}
	return nil
}
