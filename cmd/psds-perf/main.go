// Command psds-perf times prefix sums or updates on one tree layout for
// sizes 2^min-log through 2^max-log and writes the mean nanoseconds per
// query as a JSON object to stderr.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/caio/go-prefixsum"
	"github.com/caio/go-prefixsum/internal/bench"
)

func newCommand() *cobra.Command {
	v := viper.New()
	def := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "psds-perf <type> <sum|update>",
		Short: "time prefix-sum trees",
		Long: fmt.Sprintf("Time prefix-sum trees.\n\n<type> is one among: %s.\n"+
			"Every flag can also be set as PSDS_<FLAG>, e.g. PSDS_MAX_LOG=20.",
			strings.Join(prefixsum.Kinds(), ", ")),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loadConfig(v, args)
			logger, err := newLogger(v.GetString("level"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			report, err := bench.Run(c, logger)
			if err != nil {
				return err
			}
			return report.Encode(cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	addFlags(flags, def)

	v.SetEnvPrefix("PSDS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
	return cmd
}

func addFlags(flags *pflag.FlagSet, def bench.Config) {
	flags.String("log", "", "name reported instead of the tree name")
	flags.Int("min-log", def.MinLog, "log2 of the smallest size")
	flags.Int("max-log", def.MaxLog, "log2 of the largest size")
	flags.Int("runs", def.Runs, "timed batches per size")
	flags.Int("queries", def.Queries, "queries per batch")
	flags.Int64("value-seed", def.ValueSeed, "seed of the input values")
	flags.Int64("query-seed", def.QuerySeed, "seed of the queried indices")
	flags.Int("branchless-threshold", def.BranchlessThreshold, "half size below which descents avoid branches")
	flags.Int("leaf-size", def.LeafSize, "block size of the truncated tree")
	flags.String("level", "info", "logging level")
}

func loadConfig(v *viper.Viper, args []string) bench.Config {
	return bench.Config{
		Kind:                args[0],
		Operation:           args[1],
		Name:                v.GetString("log"),
		MinLog:              v.GetInt("min-log"),
		MaxLog:              v.GetInt("max-log"),
		Runs:                v.GetInt("runs"),
		Queries:             v.GetInt("queries"),
		ValueSeed:           v.GetInt64("value-seed"),
		QuerySeed:           v.GetInt64("query-seed"),
		BranchlessThreshold: v.GetInt("branchless-threshold"),
		LeafSize:            v.GetInt("leaf-size"),
	}
}

// newLogger logs progress to stdout, keeping stderr for the report.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stdout"}
	return cfg.Build()
}

func main() {
	if err := newCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
