package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseClientID(t *testing.T) {
	t.Parallel()

	id, err := ParseClientID(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (err=%v)", id, err)
	}

	for _, input := range []string{"1.1", "-1", "65536", "abc", ""} {
		if _, err := ParseClientID(input); !errors.Is(err, ErrInvalidClient) {
			t.Fatalf("expected ErrInvalidClient for %q, got %v", input, err)
		}
	}
}

func TestParseTxID(t *testing.T) {
	t.Parallel()

	id, err := ParseTxID("4294967295")
	if err != nil || id != 4294967295 {
		t.Fatalf("expected max uint32, got %d (err=%v)", id, err)
	}

	for _, input := range []string{"2.x", "4294967296", ""} {
		if _, err := ParseTxID(input); !errors.Is(err, ErrInvalidTx) {
			t.Fatalf("expected ErrInvalidTx for %q, got %v", input, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	t.Run("valid amount keeps precision", func(t *testing.T) {
		amount, err := ParseAmount(" 100.0057 ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !amount.Equal(decimal.RequireFromString("100.0057")) {
			t.Fatalf("expected 100.0057, got %s", amount)
		}
	})

	t.Run("missing amount", func(t *testing.T) {
		if _, err := ParseAmount("  "); !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("expected ErrMissingAmount, got %v", err)
		}
	})

	t.Run("malformed amount", func(t *testing.T) {
		if _, err := ParseAmount("2.x"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		for _, input := range []string{"0", "0.0000", "-1.5"} {
			if _, err := ParseAmount(input); !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount for %q, got %v", input, err)
			}
		}
	})
}
