package layout

import (
	"log/slog"
	"strings"
	"sync"
)

const (
	// ParallelThreshold is the input length, in characters, above which
	// ConvertParallel splits the work across workers.
	ParallelThreshold = 1000

	// parallelWorkers is the fixed number of chunks a large input is
	// split into.
	parallelWorkers = 4
)

// Transcoder applies keymap tables to text. It holds no per-request state;
// a single Transcoder serves all conversions concurrently.
type Transcoder struct {
	table  *Table
	logger *slog.Logger
	onMiss func(from, to Layout)
}

// TranscoderOption configures a Transcoder.
type TranscoderOption func(*Transcoder)

// WithLogger sets the structured logger used for table-miss warnings.
func WithLogger(l *slog.Logger) TranscoderOption {
	return func(t *Transcoder) { t.logger = l }
}

// WithMissHandler installs a hook invoked whenever a conversion finds no
// table for its layout pair. Used to feed diagnostics counters.
func WithMissHandler(f func(from, to Layout)) TranscoderOption {
	return func(t *Transcoder) { t.onMiss = f }
}

// NewTranscoder creates a Transcoder over the given table.
func NewTranscoder(table *Table, opts ...TranscoderOption) *Transcoder {
	t := &Transcoder{
		table:  table,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Convert substitutes each character of text according to the (from, to)
// table, preserving order and length. Characters without a table entry pass
// through unchanged. Same-layout conversion returns the input as is.
//
// A missing table for distinct valid layouts is unreachable once Build has
// verified completeness; should it happen anyway, Convert logs a warning,
// reports the miss, and returns the input unchanged instead of failing the
// request.
func (t *Transcoder) Convert(text string, from, to Layout) string {
	if from == to {
		return text
	}

	m, ok := t.table.Lookup(from, to)
	if !ok {
		t.logger.Warn("no conversion table for layout pair",
			"from", from.String(), "to", to.String())
		if t.onMiss != nil {
			t.onMiss(from, to)
		}
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if sub, ok := m[r]; ok {
			b.WriteRune(sub)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ConvertParallel behaves exactly like Convert but splits inputs longer
// than ParallelThreshold characters into parallelWorkers contiguous chunks
// converted concurrently. Chunk boundaries are computed on rune indices,
// never byte offsets, so a boundary can only fall between characters. The
// last chunk absorbs the division remainder. Results are gathered by chunk
// position, so the output is byte-for-byte identical to Convert regardless
// of worker completion order.
func (t *Transcoder) ConvertParallel(text string, from, to Layout) string {
	if from == to {
		return text
	}

	runes := []rune(text)
	if len(runes) <= ParallelThreshold {
		return t.Convert(text, from, to)
	}

	chunkSize := len(runes) / parallelWorkers
	results := make([]string, parallelWorkers)

	var wg sync.WaitGroup
	for i := 0; i < parallelWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == parallelWorkers-1 {
			end = len(runes)
		}
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			results[i] = t.Convert(chunk, from, to)
		}(i, string(runes[start:end]))
	}
	wg.Wait()

	return strings.Join(results, "")
}
