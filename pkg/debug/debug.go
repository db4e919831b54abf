// Package debug provides category-based debug logging for relayout.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): controlled via RELAYOUT_DEBUG env
//   - Levels (HOW MUCH detail): controlled via RELAYOUT_LOG_LEVEL env
//
// Usage:
//
//	debug.Log("engine", "convert", "from", from, "to", to, "length", n)
//	if debug.Enabled("storage") { /* expensive formatting */ }
//
// Categories: layout, engine, storage, auth, transport, config, all.
// Levels: ERROR, WARN, INFO, DEBUG.
package debug

import (
	"log/slog"
	"os"
	"strings"
)

// categories holds the set of enabled debug categories.
// Access is read-only after Setup(), so no synchronization needed.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv("RELAYOUT_DEBUG"))
}

// Setup configures the debug system and the default slog handler.
// Called once at startup.
func Setup() {
	categories = parseCategories(os.Getenv("RELAYOUT_DEBUG"))

	level := ParseLevel(os.Getenv("RELAYOUT_LOG_LEVEL"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Categories returns the list of enabled categories (for status reporting).
func Categories() []string {
	var result []string
	for k := range categories {
		result = append(result, k)
	}
	return result
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	if s == "" {
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
