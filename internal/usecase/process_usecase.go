package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/xact/internal/domain"
	"github.com/iho/xact/internal/engine"
	"github.com/iho/xact/internal/infrastructure/metrics"
)

// ProcessUseCase drives one pass of an event stream through the ledger
// engine and hands the resulting balances to the configured sinks.
type ProcessUseCase struct {
	engine     *engine.Engine
	idGen      IDGenerator
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	sortOutput bool
}

// NewProcessUseCase creates a new ProcessUseCase.
func NewProcessUseCase(eng *engine.Engine, idGen IDGenerator, logger zerolog.Logger) *ProcessUseCase {
	return &ProcessUseCase{
		engine:     eng,
		idGen:      idGen,
		logger:     logger,
		sortOutput: true,
	}
}

// WithMetrics sets the metrics collector.
func (uc *ProcessUseCase) WithMetrics(m *metrics.Metrics) *ProcessUseCase {
	uc.metrics = m
	return uc
}

// WithSortedOutput controls whether balances are ordered by client id.
func (uc *ProcessUseCase) WithSortedOutput(sorted bool) *ProcessUseCase {
	uc.sortOutput = sorted
	return uc
}

// Report summarizes a processing run.
type Report struct {
	RunID    string
	Records  int
	Rejected int
	Accounts int
	Locked   int
	Duration time.Duration
}

// Run reads source to the end, applying every event, then writes the
// balances to each sink in order. Rejected records are logged and skipped;
// any other read error aborts the run before anything is written.
func (uc *ProcessUseCase) Run(ctx context.Context, source EventSource, sinks ...BalanceSink) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uc.idGen.Generate()}
	log := uc.logger.With().Str("run_id", report.RunID).Logger()

	log.Info().Msg("processing started")

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		event, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err == nil || isRecordError(err) {
			report.Records++
			if uc.metrics != nil {
				uc.metrics.RecordsRead.Inc()
			}
			if report.Records%progressInterval == 0 {
				log.Info().Int("records", report.Records).Msg("processing")
			}
		}

		if err != nil {
			var recErr *domain.RecordError
			if !errors.As(err, &recErr) {
				return report, fmt.Errorf("failed to read events: %w", err)
			}

			report.Rejected++
			if uc.metrics != nil {
				uc.metrics.RecordsRejected.WithLabelValues(rejectReason(err)).Inc()
			}
			log.Warn().Err(recErr.Err).Int("line", recErr.Line).Msg("record rejected")
			continue
		}

		uc.engine.Apply(event)
	}

	accounts := uc.Snapshot()
	report.Accounts = len(accounts)
	for _, acc := range accounts {
		if acc.Locked {
			report.Locked++
		}
	}

	if uc.metrics != nil {
		uc.metrics.Accounts.Set(float64(report.Accounts))
		uc.metrics.LockedAccounts.Set(float64(report.Locked))
	}

	var errs []error
	for _, sink := range sinks {
		if err := uc.export(ctx, sink, accounts); err != nil {
			if uc.metrics != nil {
				uc.metrics.ExportErrors.WithLabelValues(sink.Name()).Inc()
			}
			log.Error().Err(err).Str("sink", sink.Name()).Msg("failed to write balances")
			errs = append(errs, fmt.Errorf("failed to write balances to %s: %w", sink.Name(), err))
		}
	}

	report.Duration = time.Since(start)
	if uc.metrics != nil {
		uc.metrics.RunDuration.Observe(report.Duration.Seconds())
	}

	log.Info().
		Int("records", report.Records).
		Int("rejected", report.Rejected).
		Int("accounts", report.Accounts).
		Int("locked", report.Locked).
		Dur("duration", report.Duration).
		Msg("processing finished")

	return report, errors.Join(errs...)
}

// Snapshot returns the current balances, ordered by client when sorted
// output is enabled.
func (uc *ProcessUseCase) Snapshot() []domain.Account {
	accounts := slices.Collect(uc.engine.Balances())
	if uc.sortOutput {
		slices.SortFunc(accounts, func(a, b domain.Account) int {
			return cmp.Compare(a.Client, b.Client)
		})
	}
	return accounts
}

func (uc *ProcessUseCase) export(ctx context.Context, sink BalanceSink, accounts []domain.Account) error {
	exportCtx, cancel := context.WithTimeout(ctx, DefaultExportTimeout)
	defer cancel()

	return sink.Write(exportCtx, accounts)
}

func isRecordError(err error) bool {
	var recErr *domain.RecordError
	return errors.As(err, &recErr)
}

// rejectReason maps a record error onto a metrics label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownEventType):
		return "unknown_type"
	case errors.Is(err, domain.ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidClient):
		return "invalid_client"
	case errors.Is(err, domain.ErrInvalidTx):
		return "invalid_tx"
	default:
		return "malformed"
	}
}
