package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dlemos/grocer-mcp/internal/catalog"
	"github.com/dlemos/grocer-mcp/internal/ledger"
	"github.com/dlemos/grocer-mcp/internal/session"
	"github.com/dlemos/grocer-mcp/internal/storage"
	"github.com/dlemos/grocer-mcp/internal/tools"
)

// New creates a fully configured MCP server with all shopping tools
// registered. Each call builds a fresh session, so every conversation
// gets its own cart; the catalog, ledger, and order index are shared.
func New(cat *catalog.Catalog, led *ledger.Ledger, idx *storage.OrderIndex) *mcp.Server {
	sess := session.New()

	st := &tools.ShoppingTools{Catalog: cat, Ledger: led, Index: idx, Session: sess}
	ot := &tools.OrderTools{Index: idx}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "grocer-mcp",
		Version: "0.1.0",
	}, nil)

	// Catalog and recipe tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_catalog",
		Description: "List all catalog items with id, name, price, and units",
	}, st.ListCatalog)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_recipes",
		Description: "List all known recipes with their ingredient item ids",
	}, st.ListRecipes)

	// Cart tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_item",
		Description: "Add an item by catalog id to the session cart",
	}, st.AddItem)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "remove_item",
		Description: "Remove an item from the session cart (no-op if absent)",
	}, st.RemoveItem)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_qty",
		Description: "Set the exact quantity of a cart item; zero or less removes it",
	}, st.UpdateQty)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "show_cart",
		Description: "Show the cart contents with per-line subtotals and the total",
	}, st.ShowCart)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_recipe_items",
		Description: "Add all ingredients for a named recipe, scaled by servings",
	}, st.AddRecipeItems)

	// Checkout and order history tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "place_order",
		Description: "Place an order from the current cart and clear the cart",
	}, st.PlaceOrder)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_orders",
		Description: "List previously placed orders, most recent first",
	}, ot.ListOrders)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_order",
		Description: "Retrieve a placed order by its order id",
	}, ot.GetOrder)

	return srv
}
