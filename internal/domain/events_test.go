package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		input   string
		want    EventType
		wantErr error
	}{
		{input: "deposit", want: EventTypeDeposit},
		{input: "withdrawal", want: EventTypeWithdrawal},
		{input: " dispute ", want: EventTypeDispute},
		{input: "resolve", want: EventTypeResolve},
		{input: "CHARGEBACK", want: EventTypeChargeback},
		{input: "deposits", wantErr: ErrUnknownEventType},
		{input: "", wantErr: ErrUnknownEventType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEventType(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseEventType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	amount := decimal.RequireFromString("2.5")

	tests := []struct {
		eventType EventType
		want      Event
	}{
		{EventTypeDeposit, Deposit{Client: 3, Tx: 9, Amount: amount}},
		{EventTypeWithdrawal, Withdrawal{Client: 3, Tx: 9, Amount: amount}},
		{EventTypeDispute, Dispute{Client: 3, Tx: 9}},
		{EventTypeResolve, Resolve{Client: 3, Tx: 9}},
		{EventTypeChargeback, Chargeback{Client: 3, Tx: 9}},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			got, err := NewEvent(tt.eventType, 3, 9, amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type() != tt.eventType {
				t.Errorf("expected type %s, got %s", tt.eventType, got.Type())
			}
			if got.ClientID() != 3 || got.TxID() != 9 {
				t.Errorf("unexpected ids: client=%d tx=%d", got.ClientID(), got.TxID())
			}
			if got != tt.want {
				t.Errorf("NewEvent() = %#v, want %#v", got, tt.want)
			}
		})
	}

	if _, err := NewEvent("refund", 1, 1, amount); !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType, got %v", err)
	}
}

func TestEventType_HasAmount(t *testing.T) {
	if !EventTypeDeposit.HasAmount() || !EventTypeWithdrawal.HasAmount() {
		t.Fatal("expected deposit and withdrawal to carry amounts")
	}
	if EventTypeDispute.HasAmount() || EventTypeResolve.HasAmount() || EventTypeChargeback.HasAmount() {
		t.Fatal("expected dispute-family events to carry no amount")
	}
}
