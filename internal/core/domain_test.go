package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionMarshalFlattensExtra(t *testing.T) {
	tx := Transaction{
		ID:          "abc-123",
		Title:       "Laptop",
		Description: "portable",
		Price:       499.99,
		Category:    "electronics",
		Sold:        true,
		DateOfSale:  time.Date(2022, 3, 15, 10, 30, 0, 0, time.UTC),
		Extra: map[string]json.RawMessage{
			"image": json.RawMessage(`"https://example.com/laptop.png"`),
		},
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshal flat object: %v", err)
	}
	if obj["id"] != "abc-123" || obj["title"] != "Laptop" {
		t.Fatalf("typed fields not flattened: %v", obj)
	}
	if obj["image"] != "https://example.com/laptop.png" {
		t.Fatalf("extra field not carried through: %v", obj)
	}
	if obj["dateOfSale"] != "2022-03-15T10:30:00Z" {
		t.Fatalf("unexpected dateOfSale: %v", obj["dateOfSale"])
	}
}

func TestTransactionMarshalKnownKeysWinOverExtra(t *testing.T) {
	tx := Transaction{
		ID:    "real-id",
		Price: 10,
		Extra: map[string]json.RawMessage{
			"id":    json.RawMessage(`"shadowed"`),
			"price": json.RawMessage(`999`),
		},
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj["id"] != "real-id" {
		t.Fatalf("typed id should win, got %v", obj["id"])
	}
	if obj["price"] != 10.0 {
		t.Fatalf("typed price should win, got %v", obj["price"])
	}
}

func TestTransactionUnmarshalRoundTrip(t *testing.T) {
	in := Transaction{
		ID:          "rt-1",
		Title:       "Chair",
		Description: "wooden",
		Price:       42.5,
		Category:    "furniture",
		Sold:        false,
		DateOfSale:  time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC),
		Extra: map[string]json.RawMessage{
			"image": json.RawMessage(`"x.png"`),
		},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Transaction
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != in.ID || out.Title != in.Title || out.Price != in.Price || out.Sold != in.Sold {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if !out.DateOfSale.Equal(in.DateOfSale) {
		t.Fatalf("date mismatch: got %v, want %v", out.DateOfSale, in.DateOfSale)
	}
	if string(out.Extra["image"]) != `"x.png"` {
		t.Fatalf("extra lost in round trip: %v", out.Extra)
	}
}

func TestTransactionUnmarshalMissingDate(t *testing.T) {
	var tx Transaction
	if err := json.Unmarshal([]byte(`{"id":"x","price":1}`), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tx.DateOfSale.IsZero() {
		t.Fatalf("expected zero date, got %v", tx.DateOfSale)
	}
}
