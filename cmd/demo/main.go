// Command demo exercises the relayout conversion core without the HTTP
// layer: it builds the keymap tables, converts a few sample phrases
// between layout pairs, and prints the API envelopes.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/layout"
)

func main() {
	fmt.Println("=== relayout conversion core demo ===")
	fmt.Println()

	// 1. Build the composed keymap tables from the hub seeds.
	table, err := layout.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "building keymap tables: %v\n", err)
		os.Exit(1)
	}
	transcoder := layout.NewTranscoder(table)

	fmt.Printf("Supported layouts: %v\n", layout.Layouts())
	fmt.Println()

	// 2. Convert sample phrases between layout pairs.
	samples := []struct {
		text     string
		from, to layout.Layout
	}{
		{"hello world", layout.Qwerty, layout.Dvorak},
		{"hello world", layout.Qwerty, layout.Russian},
		{"ghbdtn vbh", layout.Qwerty, layout.Russian},
		{"d.nnr", layout.Dvorak, layout.Qwerty},
	}

	for _, s := range samples {
		converted := transcoder.ConvertParallel(s.text, s.from, s.to)
		fmt.Printf("%-12s -> %-12s  %q => %q\n", s.from, s.to, s.text, converted)
	}
	fmt.Println()

	// 3. Show the wire envelopes the HTTP API uses.
	result := api.NewConvertResult(transcoder.ConvertParallel("hello", layout.Qwerty, layout.Dvorak))
	printJSON("success envelope", result)

	errResp := api.NewErrorResponse(api.NewUnknownLayoutError("from", "azerty"))
	printJSON("error envelope", errResp)
}

func printJSON(label string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshaling %s: %v\n", label, err)
		os.Exit(1)
	}
	fmt.Printf("--- %s ---\n%s\n\n", label, data)
}
