package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"salesdash/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "salesdash.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestReplaceAllAndFindRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ts := []core.Transaction{
		{ID: "a", Title: "first", Price: 10, Sold: true, DateOfSale: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "second", Price: 20, DateOfSale: time.Date(2022, 3, 31, 23, 0, 0, 0, time.UTC)},
		{ID: "c", Title: "other month", Price: 30, DateOfSale: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := repo.ReplaceAll(ctx, ts); err != nil {
		t.Fatalf("replace: %v", err)
	}

	w, _ := core.NewMonthWindow(2022, 3)
	got, err := repo.FindRange(ctx, w)
	if err != nil {
		t.Fatalf("find range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("insertion order not preserved: %+v", got)
	}
	if !got[0].Sold || got[1].Sold {
		t.Fatalf("sold flags lost in round trip: %+v", got)
	}
}

func TestReplaceAllClearsPriorContents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	old := []core.Transaction{{ID: "old", DateOfSale: time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)}}
	if err := repo.ReplaceAll(ctx, old); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	next := []core.Transaction{{ID: "new", DateOfSale: time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC)}}
	if err := repo.ReplaceAll(ctx, next); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	w, _ := core.NewMonthWindow(2022, 1)
	got, err := repo.FindRange(ctx, w)
	if err != nil {
		t.Fatalf("find range: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("expected only the new dataset, got %+v", got)
	}
}

func TestExtraSurvivesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := core.Transaction{
		ID:         "x",
		DateOfSale: time.Date(2022, 6, 10, 0, 0, 0, 0, time.UTC),
		Extra:      map[string]json.RawMessage{"image": json.RawMessage(`"a.png"`)},
	}
	if err := repo.ReplaceAll(ctx, []core.Transaction{in}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	w, _ := core.NewMonthWindow(2022, 6)
	got, err := repo.FindRange(ctx, w)
	if err != nil {
		t.Fatalf("find range: %v", err)
	}
	if len(got) != 1 || string(got[0].Extra["image"]) != `"a.png"` {
		t.Fatalf("extra lost: %+v", got)
	}
}
