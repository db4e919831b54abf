// Command mcp-server exposes the relayout conversion engine over the
// Model Context Protocol. Provides "convert_layout" and "list_layouts"
// tools, served via streamable HTTP on /mcp.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/relayout-dev/relayout/pkg/layout"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	table, err := layout.Build()
	if err != nil {
		log.Fatalf("Building keymap tables: %v", err)
	}
	transcoder := layout.NewTranscoder(table)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "relayout-mcp", Version: "v1.0.0"},
		nil,
	)

	type ConvertInput struct {
		Text string `json:"text" jsonschema_description:"The text to convert"`
		From string `json:"from" jsonschema_description:"The layout the text was typed on"`
		To   string `json:"to" jsonschema_description:"The layout to convert to"`
	}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_layout",
		Description: "Converts text typed on one keyboard layout to what the same keystrokes produce on another layout",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, struct{}, error) {
		from, err := layout.Parse(input.From)
		if err != nil {
			return nil, struct{}{}, fmt.Errorf("from: %w", err)
		}
		to, err := layout.Parse(input.To)
		if err != nil {
			return nil, struct{}{}, fmt.Errorf("to: %w", err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: transcoder.ConvertParallel(input.Text, from, to)},
			},
		}, struct{}{}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_layouts",
		Description: "Lists the supported keyboard layout names",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, struct{}, error) {
		names := make([]string, 0, len(layout.Layouts()))
		for _, l := range layout.Layouts() {
			names = append(names, l.String())
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: strings.Join(names, ", ")},
			},
		}, struct{}{}, nil
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, nil)

	httpMux := http.NewServeMux()
	httpMux.Handle("/mcp", handler)
	httpMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	log.Printf("relayout MCP server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, httpMux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
