package usecase

import (
	"context"

	"github.com/iho/xact/internal/domain"
)

// EventSource yields ledger events in arrival order.
type EventSource interface {
	// Next returns the next event, io.EOF once the source is exhausted, or
	// an error. A *domain.RecordError skips a single record.
	Next() (domain.Event, error)
}

// BalanceSink receives the final account balances.
type BalanceSink interface {
	Name() string
	Write(ctx context.Context, accounts []domain.Account) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
