package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/xact/internal/domain"
)

// DefaultKeyPrefix is prepended to the client id to form the hash key.
const DefaultKeyPrefix = "xact:account:"

// Hash fields written per account.
const (
	fieldAvailable = "available"
	fieldHeld      = "held"
	fieldTotal     = "total"
	fieldLocked    = "locked"
)

// BalanceExporter implements usecase.BalanceSink by mirroring every account
// into a Redis hash.
type BalanceExporter struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	retrier *Retrier
}

// NewBalanceExporter creates a new BalanceExporter.
func NewBalanceExporter(client *redis.Client, retrier *Retrier) *BalanceExporter {
	return &BalanceExporter{
		client:  client,
		prefix:  DefaultKeyPrefix,
		retrier: retrier,
	}
}

// WithPrefix sets the key prefix.
func (e *BalanceExporter) WithPrefix(prefix string) *BalanceExporter {
	e.prefix = prefix
	return e
}

// WithTTL sets an expiry on every written key. Zero disables expiry.
func (e *BalanceExporter) WithTTL(ttl time.Duration) *BalanceExporter {
	e.ttl = ttl
	return e
}

// Name returns the sink name used in logs and metrics.
func (e *BalanceExporter) Name() string {
	return "redis"
}

// Key returns the hash key for a client.
func (e *BalanceExporter) Key(client domain.ClientID) string {
	return e.prefix + strconv.FormatUint(uint64(client), 10)
}

// Write stores all accounts in a single pipeline.
func (e *BalanceExporter) Write(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	err := e.retrier.Retry(ctx, func() error {
		_, err := e.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i := range accounts {
				acc := &accounts[i]
				key := e.Key(acc.Client)
				pipe.HSet(ctx, key,
					fieldAvailable, acc.Available.String(),
					fieldHeld, acc.Held.String(),
					fieldTotal, acc.Total().String(),
					fieldLocked, strconv.FormatBool(acc.Locked),
				)
				if e.ttl > 0 {
					pipe.Expire(ctx, key, e.ttl)
				}
			}
			return nil
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to export %d accounts: %w", len(accounts), err)
	}

	return nil
}
