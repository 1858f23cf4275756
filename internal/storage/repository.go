package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"salesdash/internal/core"
	"salesdash/internal/records"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores transaction records in SQLite. Dates are kept as
// RFC3339 UTC text, so the half-open window query reduces to a string range
// scan. The seq column preserves insertion order.
type SQLiteRepository struct {
	db *sql.DB
}

var _ records.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceAll deletes all records and inserts the given ones inside a single
// transaction, so concurrent readers never see the empty in-between state.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, ts []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("delete existing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, title, description, price, category, sold, date_of_sale, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range ts {
		extra := []byte(`{}`)
		if len(t.Extra) > 0 {
			extra, err = json.Marshal(t.Extra)
			if err != nil {
				return fmt.Errorf("marshal extra for %s: %w", t.ID, err)
			}
		}

		sold := 0
		if t.Sold {
			sold = 1
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, t.Price, t.Category, sold,
			t.DateOfSale.UTC().Format(time.RFC3339), string(extra))
		if err != nil {
			return fmt.Errorf("insert record %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}

	slog.InfoContext(ctx, "Record store replaced", "count", len(ts))
	return nil
}

// FindRange returns records with date_of_sale inside the window, in
// insertion order.
func (r *SQLiteRepository) FindRange(ctx context.Context, w core.MonthWindow) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, price, category, sold, date_of_sale, extra
		FROM transactions
		WHERE date_of_sale >= ? AND date_of_sale < ?
		ORDER BY seq`,
		w.Start.UTC().Format(time.RFC3339), w.End.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			sold    int
			dateStr string
			extra   string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.Category, &sold, &dateStr, &extra); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		t.Sold = sold != 0

		t.DateOfSale, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}

		if extra != "" && extra != "{}" {
			if err := json.Unmarshal([]byte(extra), &t.Extra); err != nil {
				return nil, fmt.Errorf("unmarshal extra for %s: %w", t.ID, err)
			}
		}

		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate range rows: %w", err)
	}

	return out, nil
}
