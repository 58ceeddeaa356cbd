package simcmd

import (
	"strings"

	"cosmossdk.io/log"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding flags and scenario values.
const EnvPrefix = "NFTSTAKING"

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagParallel  = "parallel"
)

// NewRootCmd returns the root command of the scenario tool.
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:          "nftstakingsim",
		Short:        "Replay NFT staking scenarios against an in-memory keeper",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}
	addLogFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(RunCmd(v))
	return rootCmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.String(flagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	fs.String(flagLogFormat, "plain", "log format (plain|json)")
}

func newLogger(v *viper.Viper, cmd *cobra.Command) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", flagLogLevel)
	}

	opts := []log.Option{log.LevelOption(level)}
	switch format := v.GetString(flagLogFormat); format {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, errors.Errorf("invalid --%s %q", flagLogFormat, format)
	}
	return log.NewLogger(cmd.ErrOrStderr(), opts...), nil
}
