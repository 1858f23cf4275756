package records

import (
	"context"

	"salesdash/internal/core"
)

// Ports for the record store backends.
type (
	// Replacer swaps the store's full contents for a new dataset.
	Replacer interface {
		// ReplaceAll deletes every stored record and inserts the given ones
		// in order. Implementations keep the swap atomic for readers.
		ReplaceAll(ctx context.Context, ts []core.Transaction) error
	}

	// RangeFinder returns records whose dateOfSale falls inside a month
	// window, in insertion order. Text search and pagination happen on top
	// of this, in process.
	RangeFinder interface {
		FindRange(ctx context.Context, w core.MonthWindow) ([]core.Transaction, error)
	}

	// Store is the full record-store surface.
	Store interface {
		Replacer
		RangeFinder
		Close() error
	}
)
