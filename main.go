package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dlemos/grocer-mcp/internal/catalog"
	"github.com/dlemos/grocer-mcp/internal/ledger"
	"github.com/dlemos/grocer-mcp/internal/server"
	"github.com/dlemos/grocer-mcp/internal/storage"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	dataDir := flag.String("data-dir", "./data", "Directory holding catalog.json and orders.json")
	flag.Parse()

	// The catalog is loaded once and shared read-only by every session.
	cat, err := catalog.Load(filepath.Join(*dataDir, "catalog.json"))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded %d catalog items", cat.Len())

	led, err := ledger.Open(filepath.Join(*dataDir, "orders.json"))
	if err != nil {
		log.Fatalf("Failed to open order ledger: %v", err)
	}

	idx, err := storage.OpenOrderIndex(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open order index: %v", err)
	}
	defer idx.Close()

	// The index is derived from the ledger document; rebuild so it
	// reflects whatever the document says now.
	orders, err := led.All()
	if err != nil {
		log.Fatalf("Failed to read order ledger: %v", err)
	}
	if err := idx.Rebuild(orders); err != nil {
		log.Fatalf("Failed to rebuild order index: %v", err)
	}
	log.Printf("Order ledger holds %d orders", len(orders))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		log.Println("Grocer MCP server starting (stdio)")
		if err := server.New(cat, led, idx).Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "http":
		addr := ":" + *port
		// A fresh server per MCP session gives each conversation its
		// own cart.
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return server.New(cat, led, idx)
		}, nil)
		log.Printf("Grocer MCP server listening on %s", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	default:
		log.Fatalf("Unknown transport: %s (use stdio or http)", *transport)
	}
}
