package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EventType is the tag carried by every input record.
type EventType string

// Event types
const (
	EventTypeDeposit    EventType = "deposit"
	EventTypeWithdrawal EventType = "withdrawal"
	EventTypeDispute    EventType = "dispute"
	EventTypeResolve    EventType = "resolve"
	EventTypeChargeback EventType = "chargeback"
)

// ParseEventType maps a record tag onto an EventType.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(strings.ToLower(strings.TrimSpace(s))); t {
	case EventTypeDeposit, EventTypeWithdrawal, EventTypeDispute, EventTypeResolve, EventTypeChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
}

// HasAmount reports whether events of this type carry an amount.
func (t EventType) HasAmount() bool {
	return t == EventTypeDeposit || t == EventTypeWithdrawal
}

// Event is one instruction of the ledger stream. The set of variants is
// closed: Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Event interface {
	Type() EventType
	ClientID() ClientID
	TxID() TxID

	event()
}

// Deposit credits a client's available funds.
type Deposit struct {
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

// Withdrawal debits a client's available funds.
type Withdrawal struct {
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

// Dispute contests a previously recorded transaction.
type Dispute struct {
	Client ClientID
	Tx     TxID
}

// Resolve withdraws a dispute and restores the balances it moved.
type Resolve struct {
	Client ClientID
	Tx     TxID
}

// Chargeback settles a dispute by reversing the transaction and locking the account.
type Chargeback struct {
	Client ClientID
	Tx     TxID
}

func (Deposit) Type() EventType    { return EventTypeDeposit }
func (Withdrawal) Type() EventType { return EventTypeWithdrawal }
func (Dispute) Type() EventType    { return EventTypeDispute }
func (Resolve) Type() EventType    { return EventTypeResolve }
func (Chargeback) Type() EventType { return EventTypeChargeback }

func (e Deposit) ClientID() ClientID    { return e.Client }
func (e Withdrawal) ClientID() ClientID { return e.Client }
func (e Dispute) ClientID() ClientID    { return e.Client }
func (e Resolve) ClientID() ClientID    { return e.Client }
func (e Chargeback) ClientID() ClientID { return e.Client }

func (e Deposit) TxID() TxID    { return e.Tx }
func (e Withdrawal) TxID() TxID { return e.Tx }
func (e Dispute) TxID() TxID    { return e.Tx }
func (e Resolve) TxID() TxID    { return e.Tx }
func (e Chargeback) TxID() TxID { return e.Tx }

func (Deposit) event()    {}
func (Withdrawal) event() {}
func (Dispute) event()    {}
func (Resolve) event()    {}
func (Chargeback) event() {}

// NewEvent builds the variant named by t. Amount is ignored for
// dispute-family events.
func NewEvent(t EventType, client ClientID, tx TxID, amount decimal.Decimal) (Event, error) {
	switch t {
	case EventTypeDeposit:
		return Deposit{Client: client, Tx: tx, Amount: amount}, nil
	case EventTypeWithdrawal:
		return Withdrawal{Client: client, Tx: tx, Amount: amount}, nil
	case EventTypeDispute:
		return Dispute{Client: client, Tx: tx}, nil
	case EventTypeResolve:
		return Resolve{Client: client, Tx: tx}, nil
	case EventTypeChargeback:
		return Chargeback{Client: client, Tx: tx}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, string(t))
	}
}
