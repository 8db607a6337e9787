package domain

import (
	"github.com/shopspring/decimal"
)

// ClientID identifies an account holder.
type ClientID uint16

// Account holds the balances of a single client.
type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount opens an account funded with an initial deposit.
func NewAccount(client ClientID, amount decimal.Decimal) Account {
	return Account{
		Client:    client,
		Available: amount,
		Held:      decimal.Zero,
	}
}

// Total returns available plus held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// CanWithdraw reports whether amount is covered by available funds.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Available.GreaterThanOrEqual(amount)
}

// Hold moves amount from available to held. A negative amount moves funds
// the other way, which is how a disputed withdrawal is represented.
func (a *Account) Hold(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Release undoes a Hold of the same amount.
func (a *Account) Release(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Sub(amount)
}

// Reverse removes held funds for good and freezes the account.
func (a *Account) Reverse(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}
