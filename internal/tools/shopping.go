package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dlemos/grocer-mcp/internal/catalog"
	"github.com/dlemos/grocer-mcp/internal/ledger"
	"github.com/dlemos/grocer-mcp/internal/models"
	"github.com/dlemos/grocer-mcp/internal/recipes"
	"github.com/dlemos/grocer-mcp/internal/session"
	"github.com/dlemos/grocer-mcp/internal/storage"
)

// ShoppingTools holds references needed by the cart and checkout tool
// handlers. Failures the conversation can recover from (unknown item,
// unknown recipe) come back as tool errors, never Go errors, so the
// decision layer can respond in speech instead of crashing the session.
type ShoppingTools struct {
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
	Index   *storage.OrderIndex
	Session *session.Session
}

// --- Input types ---

type AddItemInput struct {
	ItemID string `json:"item_id" jsonschema:"Catalog id of the item to add"`
	Qty    int    `json:"qty,omitempty" jsonschema:"Quantity to add (defaults to 1)"`
}

type RemoveItemInput struct {
	ItemID string `json:"item_id" jsonschema:"Catalog id of the item to remove from the cart"`
}

type UpdateQtyInput struct {
	ItemID string `json:"item_id" jsonschema:"Catalog id of the item to update"`
	Qty    int    `json:"qty" jsonschema:"New quantity; zero or less removes the item"`
}

type AddRecipeItemsInput struct {
	DishName string `json:"dish_name" jsonschema:"Name of the dish to add ingredients for"`
	Servings int    `json:"servings,omitempty" jsonschema:"Number of servings (defaults to 1)"`
}

type PlaceOrderInput struct {
	CustomerName string `json:"customer_name,omitempty" jsonschema:"Customer name (defaults to Guest)"`
	Address      string `json:"address,omitempty" jsonschema:"Delivery address"`
}

// --- Handlers ---

func (t *ShoppingTools) ListCatalog(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Catalog.Summary())
}

func (t *ShoppingTools) ListRecipes(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(recipes.All())
}

func (t *ShoppingTools) AddItem(_ context.Context, _ *mcp.CallToolRequest, input AddItemInput) (*mcp.CallToolResult, any, error) {
	item, ok := t.Catalog.ByID(input.ItemID)
	if !ok {
		return toolError("Item id %q not found in catalog.", input.ItemID), nil, nil
	}
	qty := t.Session.AddItem(input.ItemID, input.Qty)
	return toolText(fmt.Sprintf("Added %d × %s to your cart.", qty, item.Name)), nil, nil
}

func (t *ShoppingTools) RemoveItem(_ context.Context, _ *mcp.CallToolRequest, input RemoveItemInput) (*mcp.CallToolResult, any, error) {
	if t.Session.RemoveItem(input.ItemID) {
		return toolText(fmt.Sprintf("Removed %s from your cart.", input.ItemID)), nil, nil
	}
	// Not an error: removing something absent needs a conversational
	// answer, not a failure.
	return toolText(fmt.Sprintf("Item %s not in your cart.", input.ItemID)), nil, nil
}

func (t *ShoppingTools) UpdateQty(_ context.Context, _ *mcp.CallToolRequest, input UpdateQtyInput) (*mcp.CallToolResult, any, error) {
	item, ok := t.Catalog.ByID(input.ItemID)
	if !ok {
		return toolError("Unknown item id %q.", input.ItemID), nil, nil
	}
	if input.Qty <= 0 {
		t.Session.SetQty(input.ItemID, input.Qty)
		return toolText(fmt.Sprintf("Removed %s from the cart.", input.ItemID)), nil, nil
	}
	t.Session.SetQty(input.ItemID, input.Qty)
	return toolText(fmt.Sprintf("Updated quantity: %d × %s.", input.Qty, item.Name)), nil, nil
}

func (t *ShoppingTools) ShowCart(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Session.Snapshot(t.Catalog))
}

func (t *ShoppingTools) AddRecipeItems(_ context.Context, _ *mcp.CallToolRequest, input AddRecipeItemsInput) (*mcp.CallToolResult, any, error) {
	ids, err := recipes.Resolve(input.DishName)
	if errors.Is(err, recipes.ErrNotFound) {
		return toolError("Don't have a recipe for %q. Try %s.", input.DishName, quotedNames(recipes.Names())), nil, nil
	}

	qty := input.Servings
	if qty < 1 {
		qty = 1
	}
	var added []string
	for _, id := range ids {
		t.Session.AddItem(id, qty)
		if item, ok := t.Catalog.ByID(id); ok {
			added = append(added, item.Name)
		} else {
			added = append(added, id)
		}
	}
	return toolText(fmt.Sprintf("Added %s to your cart for %q.", strings.Join(added, ", "), input.DishName)), nil, nil
}

func (t *ShoppingTools) PlaceOrder(_ context.Context, _ *mcp.CallToolRequest, input PlaceOrderInput) (*mcp.CallToolResult, any, error) {
	if t.Session.CartEmpty() {
		// Soft failure in the result payload: the decision layer should
		// tell the user their cart is empty, not see a tool error.
		return toolJSON(map[string]string{
			"error":   "cart_empty",
			"message": "Your cart is empty.",
		})
	}

	name := input.CustomerName
	if name == "" {
		name = "Guest"
	}

	view := t.Session.Snapshot(t.Catalog)
	items := make([]models.OrderItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, models.OrderItem{
			ID:        line.ID,
			Name:      line.Name,
			Qty:       line.Qty,
			UnitPrice: line.Price,
			Subtotal:  line.Subtotal,
		})
	}

	now := time.Now().UTC()
	order := models.Order{
		OrderID:      ledger.NewOrderID(now),
		CustomerName: name,
		Address:      input.Address,
		Items:        items,
		Total:        view.Total,
		Timestamp:    now.Format(time.RFC3339),
		Status:       "placed",
	}

	if err := t.Ledger.Append(order); err != nil {
		return toolError("Failed to record the order: %v", err), nil, nil
	}
	if err := t.Index.Insert(order); err != nil {
		// The ledger write already succeeded; the index is derived state
		// and gets rebuilt at the next startup.
		log.Printf("session %s: order index insert for %s: %v", t.Session.ID(), order.OrderID, err)
	}
	t.Session.ClearCart()

	return toolJSON(placedOrder{Success: true, Order: order})
}

type placedOrder struct {
	Success bool         `json:"success"`
	Order   models.Order `json:"order"`
}

// quotedNames renders recipe names as 'a', 'b' or 'c' for suggestion text.
func quotedNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	if len(quoted) > 1 {
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
	return strings.Join(quoted, ", ")
}

// --- Helpers ---

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
