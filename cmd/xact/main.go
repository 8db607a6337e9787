package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	csvAdapter "github.com/iho/xact/internal/adapter/csv"
	redisRepo "github.com/iho/xact/internal/adapter/repository/redis"
	"github.com/iho/xact/internal/engine"
	"github.com/iho/xact/internal/infrastructure/config"
	"github.com/iho/xact/internal/infrastructure/idgen"
	"github.com/iho/xact/internal/infrastructure/logger"
	"github.com/iho/xact/internal/infrastructure/metrics"
	"github.com/iho/xact/internal/infrastructure/redis"
	"github.com/iho/xact/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	logLevel    string
	logFormat   string
	precision   int32
	noSort      bool
	metricsFile string
	redisURL    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "xact [flags] <transactions.csv>",
		Short: "Replay a transaction log and print client balances",
		Long: `xact reads deposits, withdrawals, disputes, resolves and chargebacks from a
CSV file, applies them in order and prints the resulting client balances as
CSV on stdout. Logs go to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			applyFlags(cmd, cfg, opts)

			return run(cmd.Context(), cfg, args[0], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.StringVar(&opts.logFormat, "log-format", "console", "Log format (json, console)")
	flags.Int32Var(&opts.precision, "precision", csvAdapter.ExactPrecision, "Round output to this many decimal places; negative prints exact amounts")
	flags.BoolVar(&opts.noSort, "no-sort", false, "Print accounts in engine order instead of by client id")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	flags.StringVar(&opts.redisURL, "redis-url", "", "Also export balances to this Redis instance")

	return cmd
}

// applyFlags overrides environment configuration with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("precision") {
		cfg.OutputPrecision = opts.precision
	}
	if flags.Changed("no-sort") {
		cfg.SortOutput = !opts.noSort
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = opts.redisURL
	}
}

func run(ctx context.Context, cfg *config.Config, path string, stdout, stderr io.Writer) (err error) {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    stderr,
	})

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.MetricsFile, reg); werr != nil {
				err = errors.Join(err, fmt.Errorf("failed to write metrics: %w", werr))
			}
		}()
	}

	eng := engine.New().WithMetrics(m).WithLogger(log)
	uc := usecase.NewProcessUseCase(eng, idgen.NewULIDGenerator(), log).
		WithMetrics(m).
		WithSortedOutput(cfg.SortOutput)

	sinks := []usecase.BalanceSink{csvAdapter.NewWriter(stdout, cfg.OutputPrecision)}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisTimeout)
		if err != nil {
			return err
		}
		defer client.Close()
		log.Info().Msg("connected to redis")

		exporter := redisRepo.NewBalanceExporter(client, redisRepo.NewRetrier(log)).
			WithPrefix(cfg.RedisKeyPrefix).
			WithTTL(cfg.RedisTTL)
		sinks = append(sinks, exporter)
	}

	if _, err := uc.Run(ctx, csvAdapter.NewReader(file), sinks...); err != nil {
		return err
	}

	return nil
}
