package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Error kinds recognized at the HTTP boundary. Everything else is treated
// as an internal failure.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUpstreamFetch    = errors.New("upstream fetch failed")
	ErrStoreFailure     = errors.New("store failure")
	ErrDownstreamCall   = errors.New("downstream call failed")
)

// Transaction is a product-transaction record. Known fields are typed;
// anything else from the seed dataset rides along in Extra and is emitted
// back out on marshal.
type Transaction struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	Sold        bool
	DateOfSale  time.Time
	Extra       map[string]json.RawMessage
}

// MarshalJSON emits the record as one flat object: Extra first, then the
// typed fields on top, so a typed field always wins over an identically
// named passthrough key.
func (t Transaction) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(t.Extra)+7)
	for k, v := range t.Extra {
		obj[k] = v
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		obj[key] = raw
		return nil
	}

	if err := set("id", t.ID); err != nil {
		return nil, err
	}
	if err := set("title", t.Title); err != nil {
		return nil, err
	}
	if err := set("description", t.Description); err != nil {
		return nil, err
	}
	if err := set("price", t.Price); err != nil {
		return nil, err
	}
	if err := set("category", t.Category); err != nil {
		return nil, err
	}
	if err := set("sold", t.Sold); err != nil {
		return nil, err
	}
	if err := set("dateOfSale", t.DateOfSale.UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	return json.Marshal(obj)
}

// UnmarshalJSON is the inverse of MarshalJSON: typed fields are pulled out
// of the flat object, the rest lands in Extra. It expects already normalized
// records (numeric price, RFC3339 date); seed-time coercion lives in the
// seed package.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	pull := func(key string, dst any) error {
		raw, ok := obj[key]
		if !ok {
			return nil
		}
		delete(obj, key)
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		return nil
	}

	if err := pull("id", &t.ID); err != nil {
		return err
	}
	if err := pull("title", &t.Title); err != nil {
		return err
	}
	if err := pull("description", &t.Description); err != nil {
		return err
	}
	if err := pull("price", &t.Price); err != nil {
		return err
	}
	if err := pull("category", &t.Category); err != nil {
		return err
	}
	if err := pull("sold", &t.Sold); err != nil {
		return err
	}

	var dateStr string
	if err := pull("dateOfSale", &dateStr); err != nil {
		return err
	}
	t.DateOfSale = time.Time{}
	if dateStr != "" {
		ts, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return fmt.Errorf("unmarshal dateOfSale: %w", err)
		}
		t.DateOfSale = ts
	}

	t.Extra = nil
	if len(obj) > 0 {
		t.Extra = obj
	}

	return nil
}
