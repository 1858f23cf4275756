package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"salesdash/internal/core"
	"salesdash/internal/records"
)

// RawRecord is one untyped record from a seed source.
type RawRecord map[string]json.RawMessage

// Source provides the raw seed dataset.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
	Name() string
}

// Publisher announces a completed reseed. A nil publisher disables events.
type Publisher interface {
	PublishReseedCompleted(ctx context.Context, count int, source string) error
}

// Loader replaces the record store's contents from a seed source.
type Loader struct {
	source Source
	store  records.Replacer
	events Publisher
}

func NewLoader(source Source, store records.Replacer, events Publisher) *Loader {
	return &Loader{source: source, store: store, events: events}
}

// Reseed fetches the dataset, normalizes every record and replaces the
// store's full contents. It returns the number of inserted records. The
// completion event is best effort: a publish failure is logged and never
// fails the reseed.
func (l *Loader) Reseed(ctx context.Context) (int, error) {
	raws, err := l.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch seed data: %w", err)
	}

	ts := make([]core.Transaction, len(raws))
	for i, raw := range raws {
		ts[i] = transformRecord(raw)
	}

	if err := l.store.ReplaceAll(ctx, ts); err != nil {
		return 0, fmt.Errorf("%w: replace records: %v", core.ErrStoreFailure, err)
	}

	slog.InfoContext(ctx, "Reseed completed", "count", len(ts), "source", l.source.Name())

	if l.events != nil {
		if err := l.events.PublishReseedCompleted(ctx, len(ts), l.source.Name()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reseed event", "error", err)
		}
	}

	return len(ts), nil
}

// transformRecord normalizes one raw record: a fresh ID, coerced price,
// parsed sale date, and everything unrecognized preserved as passthrough.
func transformRecord(raw RawRecord) core.Transaction {
	t := core.Transaction{
		ID:    uuid.NewString(),
		Price: coercePrice(raw["price"]),
	}

	_ = json.Unmarshal(raw["title"], &t.Title)
	_ = json.Unmarshal(raw["description"], &t.Description)
	_ = json.Unmarshal(raw["category"], &t.Category)
	_ = json.Unmarshal(raw["sold"], &t.Sold)

	var dateStr string
	if json.Unmarshal(raw["dateOfSale"], &dateStr) == nil && dateStr != "" {
		if ts, err := time.Parse(time.RFC3339, dateStr); err == nil {
			t.DateOfSale = ts
		}
	}

	extra := make(map[string]json.RawMessage)
	for k, v := range raw {
		switch k {
		case "id", "title", "description", "price", "category", "sold", "dateOfSale":
			continue
		}
		extra[k] = v
	}
	if len(extra) > 0 {
		t.Extra = extra
	}

	return t
}

// coercePrice accepts a JSON number or a numeric string. Anything else,
// including a missing value, becomes 0, so no record is ever rejected over
// a bad price.
func coercePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return sanitize(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return sanitize(n)
		}
	}

	return 0
}

func sanitize(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
