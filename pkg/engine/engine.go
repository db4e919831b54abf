package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/debug"
	"github.com/relayout-dev/relayout/pkg/layout"
	"github.com/relayout-dev/relayout/pkg/observability"
	"github.com/relayout-dev/relayout/pkg/transport"
)

// Engine handles conversion requests. It implements transport.TextConverter.
type Engine struct {
	transcoder *layout.Transcoder
	store      transport.ConversionStore
	cfg        Config
}

// Ensure Engine implements transport.TextConverter at compile time.
var _ transport.TextConverter = (*Engine)(nil)

// New creates a new Engine. The transcoder must not be nil. The store
// can be nil; history persistence is then disabled.
func New(transcoder *layout.Transcoder, store transport.ConversionStore, cfg Config) (*Engine, error) {
	if transcoder == nil {
		return nil, fmt.Errorf("engine: transcoder must not be nil")
	}
	return &Engine{
		transcoder: transcoder,
		store:      store,
		cfg:        cfg,
	}, nil
}

// ConvertText parses the layout names, converts the text, and returns the
// success envelope. An unknown layout name yields an unknown_layout error
// naming the offending parameter.
func (e *Engine) ConvertText(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
	from, err := layout.Parse(req.From)
	if err != nil {
		return nil, layoutError("from", err)
	}

	to, err := layout.Parse(req.To)
	if err != nil {
		return nil, layoutError("to", err)
	}

	length := utf8.RuneCountInString(req.Text)

	output := e.transcoder.ConvertParallel(req.Text, from, to)

	mode := "sequential"
	if length > layout.ParallelThreshold {
		mode = "parallel"
	}
	debug.Log("engine", "converted text", "from", from, "to", to, "length", length, "mode", mode)
	observability.ConversionsTotal.WithLabelValues(from.String(), to.String(), mode).Inc()
	observability.ConvertedCharsTotal.Add(float64(length))

	e.saveHistory(ctx, req, output, from, to, length)

	return api.NewConvertResult(output), nil
}

// saveHistory persists a conversion record when a store is configured.
// Persistence failures are logged but never fail the conversion.
func (e *Engine) saveHistory(ctx context.Context, req *api.ConvertRequest, output string, from, to layout.Layout, length int) {
	if e.store == nil {
		return
	}

	conv := &api.Conversion{
		ID:        api.NewConversionID(),
		Object:    "conversion",
		From:      from.String(),
		To:        to.String(),
		Length:    length,
		CreatedAt: time.Now().Unix(),
	}
	if e.cfg.StoreText {
		conv.InputText = req.Text
		conv.OutputText = output
	}

	if err := e.store.SaveConversion(ctx, conv); err != nil {
		slog.Warn("saving conversion history failed",
			"conversion_id", conv.ID,
			"error", err,
		)
	}
}

// layoutError maps a layout parse failure to the API error taxonomy.
func layoutError(param string, err error) error {
	var unknown *layout.UnknownLayoutError
	if errors.As(err, &unknown) {
		return api.NewUnknownLayoutError(param, unknown.Name)
	}
	return api.NewInvalidRequestError(param, err.Error())
}
