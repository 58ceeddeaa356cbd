package simcmd

import (
	"strings"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/tokenize-x/nft-staking/x/nftstaking/keeper"
	"github.com/tokenize-x/nft-staking/x/nftstaking/testutil"
	"github.com/tokenize-x/nft-staking/x/nftstaking/types"
)

// Scenario is a staking history replayed on a fresh state.
type Scenario struct {
	Name                 string            `mapstructure:"name"`
	EpochDuration        time.Duration     `mapstructure:"epoch_duration"`
	UnbondingTimePenalty uint64            `mapstructure:"unbonding_time_penalty"`
	PrimaryRewardToken   string            `mapstructure:"primary_reward_token"`
	Pools                []PoolSpec        `mapstructure:"pools"`
	RewardTokens         []RewardTokenSpec `mapstructure:"reward_tokens"`
	Steps                []map[string]any  `mapstructure:"steps"`
}

// PoolSpec registers a collection and its score tables. Table keys are module type names.
// Nonce score tables map a nonce to its score.
type PoolSpec struct {
	Collection    string         `mapstructure:"collection"`
	Module        string         `mapstructure:"module"`
	BaseScores    map[string]any `mapstructure:"base_scores"`
	NonceScores   map[string]any `mapstructure:"nonce_scores"`
	FullSetScores map[string]any `mapstructure:"full_set_scores"`
}

// RewardTokenSpec registers a reward token on a module track.
type RewardTokenSpec struct {
	Token  string `mapstructure:"token"`
	Module string `mapstructure:"module"`
}

// LoadScenario reads a scenario file. Top level values can be overridden from the
// environment, for example NFTSTAKING_UNBONDING_TIME_PENALTY.
func LoadScenario(path string) (*Scenario, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read scenario %s", path)
	}
	return decodeScenario(v, path)
}

func decodeScenario(v *viper.Viper, name string) (*Scenario, error) {
	v.SetDefault("epoch_duration", keeper.DefaultEpochDuration)
	v.SetDefault("unbonding_time_penalty", types.DefaultUnbondingTimePenalty)
	v.SetDefault("primary_reward_token", "")

	scenario := &Scenario{}
	if err := v.Unmarshal(scenario); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scenario %s", name)
	}
	if scenario.Name == "" {
		scenario.Name = name
	}
	if scenario.EpochDuration <= 0 {
		return nil, errors.Errorf("scenario %s: epoch duration must be positive", scenario.Name)
	}
	return scenario, nil
}

// Run replays the scenario on a fresh state and reports the outcome. The score ledger
// invariants are checked after every step.
func (s *Scenario) Run(logger log.Logger) (*Report, error) {
	env, err := testutil.NewEnv(testutil.WithLogger(logger), testutil.WithEpochDuration(s.EpochDuration))
	if err != nil {
		return nil, err
	}

	params := types.Params{
		UnbondingTimePenalty: s.UnbondingTimePenalty,
		PrimaryRewardToken:   s.PrimaryRewardToken,
	}
	if err := env.Keeper.UpdateParams(env.Ctx, env.Authority, params); err != nil {
		return nil, errors.Wrapf(err, "%s: params", s.Name)
	}
	for _, pool := range s.Pools {
		if err := setupPool(env, pool); err != nil {
			return nil, errors.Wrapf(err, "%s: pool %s", s.Name, pool.Collection)
		}
	}
	for _, reg := range s.RewardTokens {
		module, err := parseModule(reg.Module)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: reward token %s", s.Name, reg.Token)
		}
		if err := env.Keeper.RegisterRewardToken(env.Ctx, env.Authority, reg.Token, module); err != nil {
			return nil, errors.Wrapf(err, "%s: reward token %s", s.Name, reg.Token)
		}
	}

	r := newRunner(env, logger)
	for i, step := range s.Steps {
		action := cast.ToString(step["action"])
		if err := r.run(step); err != nil {
			return nil, errors.Wrapf(err, "%s: step %d (%s)", s.Name, i, action)
		}
		if err := r.checkInvariants(); err != nil {
			return nil, errors.Wrapf(err, "%s: step %d (%s)", s.Name, i, action)
		}
	}

	return r.report(s.Name)
}

func setupPool(env *testutil.Env, pool PoolSpec) error {
	module, err := parseModule(pool.Module)
	if err != nil {
		return err
	}
	if err := env.Keeper.RegisterPool(env.Ctx, env.Authority, pool.Collection, module); err != nil {
		return err
	}

	for name, value := range pool.BaseScores {
		track, score, err := parseScore(name, value)
		if err != nil {
			return err
		}
		if err := env.Keeper.SetBaseScore(env.Ctx, env.Authority, pool.Collection, track, score); err != nil {
			return err
		}
	}
	for name, value := range pool.FullSetScores {
		track, score, err := parseScore(name, value)
		if err != nil {
			return err
		}
		if err := env.Keeper.SetFullSetScore(env.Ctx, env.Authority, pool.Collection, track, score); err != nil {
			return err
		}
	}
	for name, table := range pool.NonceScores {
		track, err := parseModule(name)
		if err != nil {
			return err
		}
		for key, value := range cast.ToStringMap(table) {
			nonce, err := cast.ToUint64E(key)
			if err != nil {
				return errors.Wrapf(err, "nonce %q", key)
			}
			score, err := parseInt(value)
			if err != nil {
				return errors.Wrapf(err, "nonce %d", nonce)
			}
			if err := env.Keeper.SetNonceScore(env.Ctx, env.Authority, pool.Collection, nonce, track, score); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseScore(name string, value any) (types.ModuleType, sdkmath.Int, error) {
	track, err := parseModule(name)
	if err != nil {
		return types.ModuleTypeInvalid, sdkmath.Int{}, err
	}
	score, err := parseInt(value)
	if err != nil {
		return types.ModuleTypeInvalid, sdkmath.Int{}, errors.Wrapf(err, "%s score", name)
	}
	return track, score, nil
}

// parseModule resolves a module type name ignoring case. Viper lowercases map keys.
func parseModule(name string) (types.ModuleType, error) {
	module, ok := lo.Find(types.AllModuleTypes(), func(m types.ModuleType) bool {
		return strings.EqualFold(m.String(), name)
	})
	if !ok {
		return types.ModuleTypeInvalid, errors.Wrapf(types.ErrInvalidModuleType, "%q", name)
	}
	return module, nil
}

// parseInt accepts integers and decimal strings, the latter for values above int64.
func parseInt(value any) (sdkmath.Int, error) {
	if s, ok := value.(string); ok {
		i, ok := sdkmath.NewIntFromString(s)
		if !ok {
			return sdkmath.Int{}, errors.Errorf("invalid integer %q", s)
		}
		return i, nil
	}
	i, err := cast.ToInt64E(value)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return sdkmath.NewInt(i), nil
}
