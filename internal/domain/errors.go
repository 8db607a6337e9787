package domain

import (
	"errors"
	"fmt"
)

var (
	// Record errors
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrInvalidClient    = errors.New("invalid client id")
	ErrInvalidTx        = errors.New("invalid transaction id")

	// Amount errors
	ErrMissingAmount = errors.New("amount is required")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// RecordError reports a single input record that could not be turned into
// an event. Processing continues with the next record.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
