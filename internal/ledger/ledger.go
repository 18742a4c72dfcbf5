// Package ledger persists placed orders to a JSON document: an ordered
// sequence of order records, fully rewritten on every append.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dlemos/grocer-mcp/internal/models"
)

// Ledger owns the orders document. All reads and writes go through a
// single mutex, so the read-modify-rewrite cycle never races within the
// process.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// Open prepares the ledger at path: the parent directory and an empty
// document are created if absent, and a corrupt document is moved aside
// before the server starts taking orders.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	l := &Ledger{path: path}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.read(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the ledger document path.
func (l *Ledger) Path() string {
	return l.path
}

// Append reads the current order sequence, appends order, and rewrites the
// document in full.
func (l *Ledger) Append(order models.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.read()
	if err != nil {
		return err
	}
	orders = append(orders, order)
	return l.write(orders)
}

// All returns every order in insertion order.
func (l *Ledger) All() ([]models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// read loads the document, creating an empty one if absent. A document
// that fails to parse is renamed to <path>.corrupt-<unix-ts> and replaced
// with an empty one, so the bad data survives for inspection instead of
// being silently treated as empty.
func (l *Ledger) read() ([]models.Order, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		empty := []models.Order{}
		if err := l.write(empty); err != nil {
			return nil, err
		}
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", l.path, time.Now().Unix())
		log.Printf("ledger %s is corrupt (%v); moving it to %s and starting empty", l.path, err, backup)
		if renameErr := os.Rename(l.path, backup); renameErr != nil {
			return nil, fmt.Errorf("back up corrupt ledger: %w", renameErr)
		}
		empty := []models.Order{}
		if err := l.write(empty); err != nil {
			return nil, err
		}
		return empty, nil
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// write rewrites the full document.
func (l *Ledger) write(orders []models.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// NewOrderID derives an order id from whole seconds since epoch. Two
// orders placed within the same second collide; acceptable for the
// single-user demo scope this ledger serves.
func NewOrderID(t time.Time) string {
	return "ORD-" + strconv.FormatInt(t.Unix(), 10)
}
