package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"salesdash/internal/core"
	"salesdash/internal/records"
)

// Dashboard serves the month-scoped read operations: listing, statistics,
// price histogram and category breakdown. Every operation resolves the
// month window once; the window carries the fixed reference year, so
// records from other years never match.
type Dashboard struct {
	store records.RangeFinder
	year  int
}

func NewDashboard(store records.RangeFinder, referenceYear int) *Dashboard {
	return &Dashboard{store: store, year: referenceYear}
}

// TransactionPage is one page of a filtered listing plus its pagination
// metadata.
type TransactionPage struct {
	Transactions []core.Transaction
	Total        int
	Page         int
	PerPage      int
	TotalPages   int
}

// CombinedView merges the four read operations for one month.
type CombinedView struct {
	Transactions TransactionPage
	Statistics   core.Statistics
	BarChart     map[string]int
	PieChart     map[string]int
}

// monthRecords resolves the window and loads the month's records.
func (d *Dashboard) monthRecords(ctx context.Context, month int) ([]core.Transaction, core.MonthWindow, error) {
	w, err := core.NewMonthWindow(d.year, month)
	if err != nil {
		return nil, core.MonthWindow{}, err
	}
	ts, err := d.store.FindRange(ctx, w)
	if err != nil {
		return nil, core.MonthWindow{}, fmt.Errorf("%w: find month records: %v", core.ErrStoreFailure, err)
	}
	return ts, w, nil
}

// ListTransactions returns the page of records matching the month window
// and search term, in insertion order, with the total match count.
func (d *Dashboard) ListTransactions(ctx context.Context, month int, search string, page, perPage int) (TransactionPage, error) {
	if page < 1 {
		return TransactionPage{}, fmt.Errorf("%w: page %d must be at least 1", core.ErrInvalidParameter, page)
	}
	if perPage < 1 {
		return TransactionPage{}, fmt.Errorf("%w: perPage %d must be at least 1", core.ErrInvalidParameter, perPage)
	}

	ts, w, err := d.monthRecords(ctx, month)
	if err != nil {
		return TransactionPage{}, err
	}

	filter := core.NewFilter(w, search)
	matched := make([]core.Transaction, 0, len(ts))
	for _, t := range ts {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}

	total := len(matched)
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return TransactionPage{
		Transactions: matched[start:end],
		Total:        total,
		Page:         page,
		PerPage:      perPage,
		TotalPages:   (total + perPage - 1) / perPage,
	}, nil
}

// Statistics computes the month's sale totals. The search term never
// applies here: statistics always cover the whole month.
func (d *Dashboard) Statistics(ctx context.Context, month int) (core.Statistics, error) {
	ts, _, err := d.monthRecords(ctx, month)
	if err != nil {
		return core.Statistics{}, err
	}
	return core.Summarize(ts), nil
}

// PriceHistogram buckets the month's records into the ten fixed price
// ranges.
func (d *Dashboard) PriceHistogram(ctx context.Context, month int) (map[string]int, error) {
	ts, _, err := d.monthRecords(ctx, month)
	if err != nil {
		return nil, err
	}
	return core.PriceHistogram(ts), nil
}

// CategoryBreakdown tallies the month's records per category label.
func (d *Dashboard) CategoryBreakdown(ctx context.Context, month int) (map[string]int, error) {
	ts, _, err := d.monthRecords(ctx, month)
	if err != nil {
		return nil, err
	}
	return core.CountByCategory(ts), nil
}

// Combined runs the four read operations for one month and merges the
// results. The month is validated once up front; the sub-operations run
// concurrently and any failure fails the whole view.
func (d *Dashboard) Combined(ctx context.Context, month int, search string, page, perPage int) (CombinedView, error) {
	if _, err := core.NewMonthWindow(d.year, month); err != nil {
		return CombinedView{}, err
	}

	var view CombinedView
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := d.ListTransactions(ctx, month, search, page, perPage)
		if err != nil {
			return wrapDownstream("transactions", err)
		}
		view.Transactions = p
		return nil
	})
	g.Go(func() error {
		s, err := d.Statistics(ctx, month)
		if err != nil {
			return wrapDownstream("statistics", err)
		}
		view.Statistics = s
		return nil
	})
	g.Go(func() error {
		h, err := d.PriceHistogram(ctx, month)
		if err != nil {
			return wrapDownstream("bar chart", err)
		}
		view.BarChart = h
		return nil
	})
	g.Go(func() error {
		c, err := d.CategoryBreakdown(ctx, month)
		if err != nil {
			return wrapDownstream("pie chart", err)
		}
		view.PieChart = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return CombinedView{}, err
	}
	return view, nil
}

// wrapDownstream marks a failed sub-operation. Parameter errors keep their
// kind so the HTTP boundary still maps them to a client error.
func wrapDownstream(op string, err error) error {
	if errors.Is(err, core.ErrInvalidParameter) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", core.ErrDownstreamCall, op, err)
}
