package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dlemos/grocer-mcp/internal/models"
	"github.com/dlemos/grocer-mcp/internal/storage"
)

// OrderTools holds references needed by the order retrieval tool handlers.
type OrderTools struct {
	Index *storage.OrderIndex
}

// --- Input types ---

type ListOrdersInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of orders to return (defaults to 20)"`
}

type GetOrderInput struct {
	OrderID string `json:"order_id" jsonschema:"Order id, e.g. ORD-1718476800"`
}

// --- Handlers ---

func (t *OrderTools) ListOrders(_ context.Context, _ *mcp.CallToolRequest, input ListOrdersInput) (*mcp.CallToolResult, any, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	orders, err := t.Index.List(limit)
	if err != nil {
		return toolError("Failed to list orders: %v", err), nil, nil
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return toolJSON(orders)
}

func (t *OrderTools) GetOrder(_ context.Context, _ *mcp.CallToolRequest, input GetOrderInput) (*mcp.CallToolResult, any, error) {
	if input.OrderID == "" {
		return toolError("Order id is required"), nil, nil
	}

	order, err := t.Index.Get(input.OrderID)
	if err != nil {
		return toolError("Failed to get order: %v", err), nil, nil
	}
	return toolJSON(order)
}
