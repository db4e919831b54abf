package transport

import (
	"context"

	"github.com/relayout-dev/relayout/pkg/api"
)

// TextConverter handles the core convert operation. The implementation
// receives a validated request, resolves the layout pair, and returns the
// converted text in a success envelope or a typed API error.
type TextConverter interface {
	ConvertText(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error)
}

// TextConverterFunc is an adapter that allows using an ordinary function
// as a TextConverter.
type TextConverterFunc func(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error)

// ConvertText calls f(ctx, req).
func (f TextConverterFunc) ConvertText(ctx context.Context, req *api.ConvertRequest) (*api.ConvertResult, error) {
	return f(ctx, req)
}

// ListOptions controls pagination, filtering, and ordering for conversion
// list operations.
type ListOptions struct {
	After  string // Cursor: return records after this ID.
	Before string // Cursor: return records before this ID.
	Limit  int    // Maximum number of records to return (default 20, max 100).
	From   string // Filter by source layout name.
	To     string // Filter by target layout name.
	Order  string // Sort order: "asc" or "desc" (default "desc").
}

// ConversionList holds a paginated list of conversion records.
type ConversionList struct {
	Object  string            `json:"object"`
	Data    []*api.Conversion `json:"data"`
	HasMore bool              `json:"has_more"`
	FirstID string            `json:"first_id"`
	LastID  string            `json:"last_id"`
}

// ConversionStore handles persistence, retrieval, and deletion of
// conversion history records. It is only wired in deployments with
// storage configured; the conversion core itself never touches it.
type ConversionStore interface {
	// SaveConversion persists a completed conversion record.
	SaveConversion(ctx context.Context, conv *api.Conversion) error

	// GetConversion retrieves a record by ID. Returns storage.ErrNotFound
	// if the record does not exist.
	GetConversion(ctx context.Context, id string) (*api.Conversion, error)

	// DeleteConversion removes a record by ID.
	DeleteConversion(ctx context.Context, id string) error

	// ListConversions returns a paginated list of records, filtered by
	// tenant (when present in context) and optionally by layout pair.
	ListConversions(ctx context.Context, opts ListOptions) (*ConversionList, error)

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases connections and resources.
	Close() error
}
