// Package csv reads ledger events from and writes balances to delimited text.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/xact/internal/domain"
)

// Column names of the event input.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

const byteOrderMark = "\ufeff"

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Reader decodes events from CSV input with a header row.
type Reader struct {
	csv     *stdcsv.Reader
	columns map[string]int
	width   int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := stdcsv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next event. It returns io.EOF when the input is
// exhausted and a *domain.RecordError for a record that is malformed.
func (r *Reader) Next() (domain.Event, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		var parseErr *stdcsv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &domain.RecordError{Line: parseErr.StartLine, Err: fmt.Errorf("%w: %v", domain.ErrMalformedRecord, parseErr.Err)}
		}
		return nil, err
	}

	line, _ := r.csv.FieldPos(0)

	event, err := r.decode(record)
	if err != nil {
		return nil, &domain.RecordError{Line: line, Err: err}
	}

	return event, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	r.columns = columns
	r.width = len(header)

	return nil
}

func (r *Reader) decode(record []string) (domain.Event, error) {
	if len(record) > r.width {
		return nil, fmt.Errorf("%w: %d fields, header has %d", domain.ErrMalformedRecord, len(record), r.width)
	}

	fieldType, ok := r.field(record, ColumnType)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, ColumnType)
	}
	eventType, err := domain.ParseEventType(fieldType)
	if err != nil {
		return nil, err
	}

	fieldClient, ok := r.field(record, ColumnClient)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, ColumnClient)
	}
	client, err := domain.ParseClientID(fieldClient)
	if err != nil {
		return nil, err
	}

	fieldTx, ok := r.field(record, ColumnTx)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, ColumnTx)
	}
	tx, err := domain.ParseTxID(fieldTx)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if eventType.HasAmount() {
		fieldAmount, _ := r.field(record, ColumnAmount)
		amount, err = domain.ParseAmount(fieldAmount)
		if err != nil {
			return nil, err
		}
	}

	return domain.NewEvent(eventType, client, tx, amount)
}

// field returns the trimmed value of the named column and whether the
// record is long enough to hold it.
func (r *Reader) field(record []string, name string) (string, bool) {
	i, ok := r.columns[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}
