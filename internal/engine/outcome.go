package engine

// Outcome records what an event did to the ledger. Only Applied changes
// state; every other value names the guard that dropped the event.
type Outcome int

const (
	Applied Outcome = iota
	UnknownClient
	UnknownTransaction
	InsufficientFunds
	AlreadyDisputed
	NotDisputed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case UnknownClient:
		return "unknown_client"
	case UnknownTransaction:
		return "unknown_transaction"
	case InsufficientFunds:
		return "insufficient_funds"
	case AlreadyDisputed:
		return "already_disputed"
	case NotDisputed:
		return "not_disputed"
	default:
		return "unknown"
	}
}
