package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	csvAdapter "github.com/iho/payengine/internal/adapter/csv"
	"github.com/iho/payengine/internal/engine"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payengine <transactions.csv>",
		Short: "Process a transaction stream into final account balances",
		Long: `payengine reads a CSV stream of deposits, withdrawals, disputes,
resolves and chargebacks, settles them against per-client accounts and
writes the final balances as CSV to stdout. Diagnostics go to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inputPath string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().
		Str("run_id", ulid.Make().String()).
		Logger()

	registry := prometheus.NewRegistry()
	runMetrics := metrics.New(registry)

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	eng := engine.New(engine.Config{
		QueueSize: cfg.QueueSize,
		Logger:    log,
		Metrics:   runMetrics,
	})
	eng.Start()

	if err := produce(ctx, eng, csvAdapter.NewReader(input), log); err != nil {
		eng.Close()
		eng.Wait()

		return err
	}

	eng.Close()
	accounts := eng.Wait()

	if err := csvAdapter.NewWriter(out).WriteAccounts(accounts); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logRunSummary(log, registry, len(accounts))

	return nil
}

// produce streams records into the engine. Malformed records are logged and
// skipped; only reader-level failures and cancellation are fatal.
func produce(ctx context.Context, eng *engine.Engine, reader *csvAdapter.Reader, log zerolog.Logger) error {
	for {
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var parseErr *csvAdapter.ParseError
		if errors.As(err, &parseErr) {
			log.Error().Err(parseErr).Msg("skipping malformed record")
			continue
		}

		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if err := eng.Submit(ctx, tx); err != nil {
			return err
		}
	}
}

func logRunSummary(log zerolog.Logger, gatherer prometheus.Gatherer, accounts int) {
	families, err := gatherer.Gather()
	if err != nil {
		log.Error().Err(err).Msg("failed to gather run metrics")
		return
	}

	event := log.Info().Int("accounts", accounts)
	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}

		event = event.Float64(family.GetName(), total)
	}

	event.Msg("run complete")
}
