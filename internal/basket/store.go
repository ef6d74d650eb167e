// Package basket provides SQLite-backed persistence for the shopper's
// pending purchase lines. Quantities are clamped to the stock snapshot
// taken when a product is added; prices are integer cents.
package basket

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Product is the slice of a catalog item the basket cares about.
// Stock is an advisory snapshot taken at add time.
type Product struct {
	ID             string
	Name           string
	UnitPriceCents int64
	Stock          int
}

// Line is one product entry in the basket. ProductID is unique across
// lines and Quantity stays within [1, Stock].
type Line struct {
	ProductID      string
	ProductName    string
	UnitPriceCents int64
	Stock          int
	Quantity       int
}

// SubtotalCents returns the line's price contribution.
func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Store owns the basket lines. Every mutation persists the full line set
// immediately so the basket survives reloads.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens the SQLite database at dbPath and creates the basket
// table if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS basket_lines (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL UNIQUE,
		product_name TEXT NOT NULL,
		unit_price_cents INTEGER NOT NULL,
		stock INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add puts quantity units of product into the basket. Quantities below 1
// are a no-op. An existing line for the same product merges by increasing
// its quantity; the result is clamped to the stock snapshot.
func (s *Store) Add(p Product, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT quantity, stock FROM basket_lines WHERE product_id = ?`, p.ID)
	var current, stock int
	err := row.Scan(&current, &stock)
	switch {
	case err == sql.ErrNoRows:
		q := clamp(quantity, p.Stock)
		_, err := s.db.Exec(
			`INSERT INTO basket_lines (product_id, product_name, unit_price_cents, stock, quantity)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.UnitPriceCents, p.Stock, q,
		)
		if err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("scan line: %w", err)
	}

	q := clamp(current+quantity, stock)
	if _, err := s.db.Exec(`UPDATE basket_lines SET quantity = ? WHERE product_id = ?`, q, p.ID); err != nil {
		return fmt.Errorf("update line: %w", err)
	}
	return nil
}

// SetQuantity changes a line's quantity, clamped to its stock snapshot.
// Setting quantity below 1 removes the line; unknown products are no-ops.
func (s *Store) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT stock FROM basket_lines WHERE product_id = ?`, productID)
	var stock int
	err := row.Scan(&stock)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan line: %w", err)
	}

	q := clamp(quantity, stock)
	if _, err := s.db.Exec(`UPDATE basket_lines SET quantity = ? WHERE product_id = ?`, q, productID); err != nil {
		return fmt.Errorf("update line: %w", err)
	}
	return nil
}

// Remove deletes the line for productID if present. Idempotent.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM basket_lines WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	return nil
}

// Clear empties all lines.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM basket_lines`); err != nil {
		return fmt.Errorf("clear basket: %w", err)
	}
	return nil
}

// Lines returns all lines in the order they were added.
func (s *Store) Lines() ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT product_id, product_name, unit_price_cents, stock, quantity
		 FROM basket_lines ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.UnitPriceCents, &l.Stock, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return lines, nil
}

// Total returns the sum of unit price times quantity over all lines,
// in cents.
func (s *Store) Total() (int64, error) {
	lines, err := s.Lines()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, l := range lines {
		total += l.SubtotalCents()
	}
	return total, nil
}

// Count returns the sum of quantities across lines, not the line count.
// Drives the basket badge.
func (s *Store) Count() (int, error) {
	lines, err := s.Lines()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// clamp bounds q to [1, stock]. A non-positive stock snapshot still
// admits a single unit; stock is advisory, not authoritative.
func clamp(q, stock int) int {
	if stock > 0 && q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}
