package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dlemos/grocer-mcp/internal/cart"
	"github.com/dlemos/grocer-mcp/internal/catalog"
	"github.com/dlemos/grocer-mcp/internal/models"
)

// Session holds the per-conversation state for one MCP session: today just
// the cart, behind a mutex so tool handlers never race on it. The cart
// lives and dies with the session; only placed orders are durable.
type Session struct {
	mu   sync.Mutex
	id   string
	cart *cart.Cart
}

// New creates a session with an empty cart and a generated id.
func New() *Session {
	return &Session{id: uuid.New().String(), cart: cart.New()}
}

// ID returns the generated session id, used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// AddItem increments the cart quantity for itemID and returns the
// resulting quantity.
func (s *Session) AddItem(itemID string, qty int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Add(itemID, qty)
}

// RemoveItem deletes the cart entry and reports whether it was present.
func (s *Session) RemoveItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(itemID)
}

// SetQty sets the cart quantity for itemID; non-positive qty removes it.
func (s *Session) SetQty(itemID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQty(itemID, qty)
}

// Snapshot returns the cart joined against the catalog.
func (s *Session) Snapshot(cat *catalog.Catalog) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot(cat)
}

// CartEmpty reports whether the cart has no entries.
func (s *Session) CartEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Empty()
}

// ClearCart empties the cart, as after a successful order.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}
