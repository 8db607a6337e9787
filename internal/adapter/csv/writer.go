package csv

import (
	"context"
	stdcsv "encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/xact/internal/domain"
)

// ExactPrecision renders every amount exactly as stored.
const ExactPrecision int32 = -1

var balanceHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account balances as CSV.
type Writer struct {
	csv           *stdcsv.Writer
	precision     int32
	headerWritten bool
}

// NewWriter creates a Writer. A non-negative precision rounds amounts to
// that many decimal places; ExactPrecision prints each amount as stored.
func NewWriter(w io.Writer, precision int32) *Writer {
	return &Writer{
		csv:       stdcsv.NewWriter(w),
		precision: precision,
	}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string {
	return "csv"
}

// Write writes one row per account, preceded by the header on first use.
func (w *Writer) Write(ctx context.Context, accounts []domain.Account) error {
	if !w.headerWritten {
		if err := w.csv.Write(balanceHeader); err != nil {
			return err
		}
		w.headerWritten = true
	}

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := []string{
			strconv.FormatUint(uint64(acc.Client), 10),
			w.format(acc.Available),
			w.format(acc.Held),
			w.format(acc.Total()),
			strconv.FormatBool(acc.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) format(d decimal.Decimal) string {
	if w.precision < 0 {
		return d.String()
	}
	return d.StringFixed(w.precision)
}
