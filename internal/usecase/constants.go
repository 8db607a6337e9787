package usecase

import "time"

const (
	// DefaultExportTimeout bounds writing balances to a single sink.
	DefaultExportTimeout = 30 * time.Second

	// progressInterval is how many records pass between progress log lines.
	progressInterval = 100_000
)
