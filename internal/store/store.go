// Package store provides the SQLite-backed append-only ledger.
//
// The records table is insert-only: corrections happen by appending new rows,
// never by updating or deleting old ones, so the id column doubles as the
// ledger's append order.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger is a handle to the ledger database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append inserts one record and returns its assigned append sequence.
func (l *Ledger) Append(rec model.Record) (int64, error) {
	res, err := l.db.Exec(`INSERT INTO records
		(recorded_on, item, category, status, quantity, unit, unit_price, total_cost, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.Day(rec.Date).Format("2006-01-02"), rec.Item, rec.Category, string(rec.Status),
		rec.Quantity, rec.Unit, rec.UnitPrice, rec.TotalCost, rec.Notes,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("appending record: %w", err)
	}
	return res.LastInsertId()
}

// AppendAll inserts a batch of records in one transaction.
func (l *Ledger) AppendAll(recs []model.Record) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range recs {
		_, err := tx.Exec(`INSERT INTO records
			(recorded_on, item, category, status, quantity, unit, unit_price, total_cost, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.Day(rec.Date).Format("2006-01-02"), rec.Item, rec.Category, string(rec.Status),
			rec.Quantity, rec.Unit, rec.UnitPrice, rec.TotalCost, rec.Notes, now,
		)
		if err != nil {
			return fmt.Errorf("appending record for %q: %w", rec.Item, err)
		}
	}

	return tx.Commit()
}

// ReadAll returns every row for one item in append order.
func (l *Ledger) ReadAll(item string) ([]ledger.RawRow, error) {
	return l.readRows("SELECT id, recorded_on, item, category, status, quantity, unit, unit_price, total_cost, notes FROM records WHERE item = ? ORDER BY id", item)
}

// ReadEverything returns all rows for all items in append order.
func (l *Ledger) ReadEverything() ([]ledger.RawRow, error) {
	return l.readRows("SELECT id, recorded_on, item, category, status, quantity, unit, unit_price, total_cost, notes FROM records ORDER BY id")
}

func (l *Ledger) readRows(query string, args ...any) ([]ledger.RawRow, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []ledger.RawRow
	for rows.Next() {
		var row ledger.RawRow
		var dateStr string
		err := rows.Scan(&row.Seq, &dateStr, &row.Item, &row.Category, &row.Status,
			&row.Quantity, &row.Unit, &row.UnitPrice, &row.TotalCost, &row.Notes)
		if err != nil {
			return nil, err
		}
		row.Date, _ = time.Parse("2006-01-02", dateStr)
		result = append(result, row)
	}
	return result, rows.Err()
}

// ItemInfo describes one known item for catalogs and entry-form defaults.
type ItemInfo struct {
	Name         string
	LastUnit     string
	LastCategory string
	Records      int
}

// Items returns the known items with their most recently recorded unit and
// category. Rows arrive in append order, so later values win.
func (l *Ledger) Items() ([]ItemInfo, error) {
	rows, err := l.ReadEverything()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int)
	var items []ItemInfo
	for _, row := range rows {
		i, ok := idx[row.Item]
		if !ok {
			i = len(items)
			idx[row.Item] = i
			items = append(items, ItemInfo{Name: row.Item})
		}
		items[i].Records++
		if row.Unit != "" {
			items[i].LastUnit = row.Unit
		}
		if row.Category != "" {
			items[i].LastCategory = row.Category
		}
	}
	return items, nil
}

// Categories returns the distinct non-empty categories in the ledger.
func (l *Ledger) Categories() ([]string, error) {
	rows, err := l.db.Query("SELECT DISTINCT category FROM records WHERE category != '' ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Count returns the number of ledger rows.
func (l *Ledger) Count() (int64, error) {
	var count int64
	err := l.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// DefaultPath returns the platform-appropriate ledger database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "larder", "ledger.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "larder", "ledger.db")
}
