package seed

import "testing"

func TestRowsToRecords(t *testing.T) {
	values := [][]interface{}{
		{"title", "price", "sold", "", "image"},
		{"Laptop", 499.99, true, "ignored", "a.png"},
		{"Chair", "42.5"},
	}

	recs := rowsToRecords(values)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	if string(recs[0]["title"]) != `"Laptop"` || string(recs[0]["price"]) != "499.99" {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if string(recs[0]["sold"]) != "true" || string(recs[0]["image"]) != `"a.png"` {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if _, ok := recs[0][""]; ok {
		t.Fatal("blank header column must be dropped")
	}

	if string(recs[1]["price"]) != `"42.5"` {
		t.Fatalf("short row not mapped: %v", recs[1])
	}
	if _, ok := recs[1]["sold"]; ok {
		t.Fatal("missing cells must stay absent")
	}
}

func TestRowsToRecordsHeaderOnly(t *testing.T) {
	if recs := rowsToRecords([][]interface{}{{"title"}}); recs != nil {
		t.Fatalf("expected nil for header-only sheet, got %v", recs)
	}
	if recs := rowsToRecords(nil); recs != nil {
		t.Fatalf("expected nil for empty sheet, got %v", recs)
	}
}
