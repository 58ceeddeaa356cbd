package simcmd

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// RunCmd replays scenario files and prints one report per file.
func RunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]...",
		Short: "Run scenario files",
		Long: `Runs every scenario file on its own in-memory chain state and prints a JSON report with
the final scores, pending rewards and balances. Scenario values can be overridden with
NFTSTAKING_<KEY> environment variables.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v, cmd)
			if err != nil {
				return err
			}

			reports := make([]*Report, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(v.GetInt(flagParallel))
			for i, path := range args {
				g.Go(func() error {
					scenario, err := LoadScenario(path)
					if err != nil {
						return err
					}
					if err := ctx.Err(); err != nil {
						return err
					}
					report, err := scenario.Run(logger.With("scenario", filepath.Base(path)))
					if err != nil {
						return err
					}
					reports[i] = report
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}
	cmd.Flags().Int(flagParallel, 4, "number of scenarios run concurrently")
	return cmd
}
