package models

// CatalogItem is a single purchasable product from the catalog document.
type CatalogItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Units string  `json:"units,omitempty"`
}

// CartLine is one cart entry joined against the catalog.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the presentation snapshot of a cart: joined lines plus a
// running total rounded to two decimal places.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// OrderItem is a denormalized line of a placed order. Name and unit price
// are copied at order time so later catalog edits never alter history.
type OrderItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is a placed order as persisted in the ledger document. Immutable
// once appended.
type Order struct {
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Timestamp    string      `json:"timestamp"`
	Status       string      `json:"status"`
}
