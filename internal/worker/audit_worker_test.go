package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesdash/internal/amqp"
	"salesdash/internal/core"
	"salesdash/internal/records/memory"
)

func TestProfile(t *testing.T) {
	store := memory.New()
	err := store.ReplaceAll(context.Background(), []core.Transaction{
		{Price: 100, Sold: true, DateOfSale: time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Price: 50, Sold: false, DateOfSale: time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC)},
		{Price: 200, Sold: true, DateOfSale: time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := NewAuditWorker(store, 2022)
	profiles, err := w.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profiles) != 12 {
		t.Fatalf("expected 12 months, got %d", len(profiles))
	}

	jan := profiles[0]
	if jan.Month != 1 || jan.Count != 2 || jan.TotalAmount != 150 || jan.SoldCount != 1 {
		t.Fatalf("unexpected january profile: %+v", jan)
	}
	if profiles[6].Count != 1 {
		t.Fatalf("unexpected july profile: %+v", profiles[6])
	}
	if profiles[2].Count != 0 {
		t.Fatalf("expected empty march, got %+v", profiles[2])
	}
}

func TestHandleReseedMessage(t *testing.T) {
	w := NewAuditWorker(memory.New(), 2022)
	if err := w.HandleReseedMessage(amqp.NewReseedCompletedMessage(0, "http")); err != nil {
		t.Fatalf("handle: %v", err)
	}
}

type failingStore struct{}

func (failingStore) FindRange(context.Context, core.MonthWindow) ([]core.Transaction, error) {
	return nil, errors.New("connection reset")
}

func TestAuditPropagatesStoreFailure(t *testing.T) {
	w := NewAuditWorker(failingStore{}, 2022)
	if err := w.Audit(context.Background()); err == nil {
		t.Fatal("expected error from failing store")
	}
}
