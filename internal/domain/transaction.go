package domain

import (
	"github.com/shopspring/decimal"
)

// TxID identifies a transaction within a client's history.
type TxID uint32

// TransactionKind distinguishes the two kinds of recorded transactions.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
)

// Transaction is a deposit or withdrawal that was applied to an account.
// It is stored under its client's ledger, so it carries no client id.
// Disputes, resolves and chargebacks reference it by Tx.
type Transaction struct {
	Tx       TxID
	Amount   decimal.Decimal
	Kind     TransactionKind
	Disputed bool
}

// HeldAmount is the signed amount a dispute moves into held funds.
// Disputing a deposit holds the deposited funds; disputing a withdrawal
// returns the funds to available and drives held down by the same amount.
func (t *Transaction) HeldAmount() decimal.Decimal {
	if t.Kind == TransactionKindWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
