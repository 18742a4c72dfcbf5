// Package storage maintains a SQLite index over placed orders so the
// retrieval tools can look orders up without rescanning the ledger
// document. The JSON ledger stays canonical; this index is derived state,
// rebuilt from the ledger at startup.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/dlemos/grocer-mcp/internal/models"
)

// OrdersSchema is the SQL schema for the order index database.
const OrdersSchema = `
CREATE TABLE IF NOT EXISTS orders (
    order_id      TEXT PRIMARY KEY,
    customer_name TEXT NOT NULL DEFAULT '',
    address       TEXT NOT NULL DEFAULT '',
    total         REAL NOT NULL,
    status        TEXT NOT NULL,
    placed_at     TEXT NOT NULL,
    payload       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_placed_at ON orders(placed_at);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_name);
`

// OrderIndex wraps the orders.db database in the data directory.
type OrderIndex struct {
	db *sql.DB
}

// OpenOrderIndex opens (or creates) the index database and runs the schema.
func OpenOrderIndex(dataDir string) (*OrderIndex, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "orders.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open order index: %w", err)
	}

	if _, err := db.Exec(OrdersSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate order index: %w", err)
	}

	return &OrderIndex{db: db}, nil
}

// Close closes the database connection.
func (x *OrderIndex) Close() error {
	return x.db.Close()
}

// Insert upserts one order. Order ids are second-granular, so a same-second
// replacement keeps the index consistent with the ledger's last record.
func (x *OrderIndex) Insert(order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	_, err = x.db.Exec(
		`INSERT OR REPLACE INTO orders (order_id, customer_name, address, total, status, placed_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.OrderID, order.CustomerName, order.Address, order.Total, order.Status, order.Timestamp, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Get returns the order with the given id.
func (x *OrderIndex) Get(orderID string) (*models.Order, error) {
	var payload string
	err := x.db.QueryRow(`SELECT payload FROM orders WHERE order_id = ?`, orderID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %q not found", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	var order models.Order
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		return nil, fmt.Errorf("decode order %q: %w", orderID, err)
	}
	return &order, nil
}

// List returns up to limit orders, most recent first.
func (x *OrderIndex) List(limit int) ([]models.Order, error) {
	rows, err := x.db.Query(
		`SELECT payload FROM orders ORDER BY placed_at DESC, order_id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var order models.Order
		if err := json.Unmarshal([]byte(payload), &order); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// Rebuild replaces the index contents with the given orders, in one
// transaction. Called at startup with the full ledger.
func (x *OrderIndex) Rebuild(orders []models.Order) error {
	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM orders`); err != nil {
		return fmt.Errorf("clear order index: %w", err)
	}
	for _, order := range orders {
		payload, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("encode order: %w", err)
		}
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO orders (order_id, customer_name, address, total, status, placed_at, payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.OrderID, order.CustomerName, order.Address, order.Total, order.Status, order.Timestamp, string(payload),
		)
		if err != nil {
			return fmt.Errorf("index order %q: %w", order.OrderID, err)
		}
	}
	return tx.Commit()
}

// Count reports the number of indexed orders.
func (x *OrderIndex) Count() (int, error) {
	var n int
	if err := x.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
