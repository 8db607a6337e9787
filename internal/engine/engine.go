// Package engine holds the per-client ledger state machine.
package engine

import (
	"iter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/xact/internal/domain"
	"github.com/iho/xact/internal/infrastructure/metrics"
)

// ledger is everything the engine knows about one client.
type ledger struct {
	account      domain.Account
	transactions map[domain.TxID]*domain.Transaction
}

// Engine applies ledger events in arrival order and keeps the resulting
// balances. It is not safe for concurrent use.
type Engine struct {
	ledgers map[domain.ClientID]*ledger
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		ledgers: make(map[domain.ClientID]*ledger),
		logger:  zerolog.Nop(),
	}
}

// WithMetrics records applied and ignored events on m.
func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.metrics = m
	return e
}

// WithLogger logs ignored events at debug level.
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Apply applies one event. Events that cannot be applied are dropped
// without error.
func (e *Engine) Apply(event domain.Event) {
	outcome := e.apply(event)

	if outcome != Applied {
		e.logger.Debug().
			Str("type", string(event.Type())).
			Uint16("client", uint16(event.ClientID())).
			Uint32("tx", uint32(event.TxID())).
			Stringer("reason", outcome).
			Msg("event ignored")
	}

	if e.metrics == nil {
		return
	}
	if outcome == Applied {
		e.metrics.EventsApplied.WithLabelValues(string(event.Type())).Inc()
	} else {
		e.metrics.EventsIgnored.WithLabelValues(string(event.Type()), outcome.String()).Inc()
	}
}

func (e *Engine) apply(event domain.Event) Outcome {
	switch ev := event.(type) {
	case domain.Deposit:
		return e.deposit(ev.Client, ev.Tx, ev.Amount)
	case domain.Withdrawal:
		return e.withdraw(ev.Client, ev.Tx, ev.Amount)
	case domain.Dispute:
		return e.dispute(ev.Client, ev.Tx)
	case domain.Resolve:
		return e.resolve(ev.Client, ev.Tx)
	case domain.Chargeback:
		return e.chargeback(ev.Client, ev.Tx)
	default:
		panic("engine: unhandled event type " + string(event.Type()))
	}
}

// Balances yields a copy of every account in no particular order.
func (e *Engine) Balances() iter.Seq[domain.Account] {
	return func(yield func(domain.Account) bool) {
		for _, l := range e.ledgers {
			if !yield(l.account) {
				return
			}
		}
	}
}

// Account returns a copy of the client's account.
func (e *Engine) Account(client domain.ClientID) (domain.Account, bool) {
	l, ok := e.ledgers[client]
	if !ok {
		return domain.Account{}, false
	}
	return l.account, true
}

// Len returns the number of accounts.
func (e *Engine) Len() int {
	return len(e.ledgers)
}

// Deposits never check the lock flag; a locked account still accepts funds.
func (e *Engine) deposit(client domain.ClientID, tx domain.TxID, amount decimal.Decimal) Outcome {
	l, ok := e.ledgers[client]
	if !ok {
		l = &ledger{
			account:      domain.NewAccount(client, amount),
			transactions: make(map[domain.TxID]*domain.Transaction),
		}
		e.ledgers[client] = l
	} else {
		l.account.Available = l.account.Available.Add(amount)
	}

	l.record(tx, amount, domain.TransactionKindDeposit)
	return Applied
}

func (e *Engine) withdraw(client domain.ClientID, tx domain.TxID, amount decimal.Decimal) Outcome {
	l, ok := e.ledgers[client]
	if !ok {
		return UnknownClient
	}

	if !l.account.CanWithdraw(amount) {
		return InsufficientFunds
	}

	l.account.Available = l.account.Available.Sub(amount)
	l.record(tx, amount, domain.TransactionKindWithdrawal)
	return Applied
}

func (e *Engine) dispute(client domain.ClientID, tx domain.TxID) Outcome {
	l, t, outcome := e.lookup(client, tx)
	if outcome != Applied {
		return outcome
	}
	if t.Disputed {
		return AlreadyDisputed
	}

	t.Disputed = true
	l.account.Hold(t.HeldAmount())
	return Applied
}

func (e *Engine) resolve(client domain.ClientID, tx domain.TxID) Outcome {
	l, t, outcome := e.lookup(client, tx)
	if outcome != Applied {
		return outcome
	}
	if !t.Disputed {
		return NotDisputed
	}

	t.Disputed = false
	l.account.Release(t.HeldAmount())
	return Applied
}

// Chargeback clears the dispute flag, so the same transaction may be
// disputed again afterwards.
func (e *Engine) chargeback(client domain.ClientID, tx domain.TxID) Outcome {
	l, t, outcome := e.lookup(client, tx)
	if outcome != Applied {
		return outcome
	}
	if !t.Disputed {
		return NotDisputed
	}

	t.Disputed = false
	l.account.Reverse(t.HeldAmount())
	return Applied
}

// lookup finds tx among the transactions recorded for client.
func (e *Engine) lookup(client domain.ClientID, tx domain.TxID) (*ledger, *domain.Transaction, Outcome) {
	l, ok := e.ledgers[client]
	if !ok {
		return nil, nil, UnknownClient
	}

	t, ok := l.transactions[tx]
	if !ok {
		return nil, nil, UnknownTransaction
	}

	return l, t, Applied
}

// record stores a transaction, replacing any earlier one with the same id.
func (l *ledger) record(tx domain.TxID, amount decimal.Decimal, kind domain.TransactionKind) {
	l.transactions[tx] = &domain.Transaction{
		Tx:     tx,
		Amount: amount,
		Kind:   kind,
	}
}
