// Package postgres provides a PostgreSQL implementation of
// transport.ConversionStore. It uses pgx/v5 for connection pooling.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/storage"
	"github.com/relayout-dev/relayout/pkg/transport"
)

// Store is a PostgreSQL-backed ConversionStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements transport.ConversionStore at compile time.
var _ transport.ConversionStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveConversion persists a conversion record.
func (s *Store) SaveConversion(ctx context.Context, conv *api.Conversion) error {
	tenantID := storage.GetTenant(ctx)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversions (
			id, tenant_id, from_layout, to_layout,
			input_text, output_text, length, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		conv.ID, tenantID, conv.From, conv.To,
		nullString(conv.InputText), nullString(conv.OutputText),
		conv.Length, conv.CreatedAt,
	)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting conversion: %w", err)
	}

	return nil
}

// GetConversion retrieves a record by ID, scoped by tenant when one is
// present in the context.
func (s *Store) GetConversion(ctx context.Context, id string) (*api.Conversion, error) {
	tenantID := storage.GetTenant(ctx)

	query := `
		SELECT id, from_layout, to_layout, input_text, output_text, length, created_at
		FROM conversions
		WHERE id = $1
	`
	args := []any{id}
	if tenantID != "" {
		query += " AND tenant_id = $2"
		args = append(args, tenantID)
	}

	var conv api.Conversion
	var inputText, outputText *string

	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&conv.ID, &conv.From, &conv.To,
		&inputText, &outputText,
		&conv.Length, &conv.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying conversion: %w", err)
	}

	conv.Object = "conversion"
	if inputText != nil {
		conv.InputText = *inputText
	}
	if outputText != nil {
		conv.OutputText = *outputText
	}

	return &conv, nil
}

// DeleteConversion removes a record by ID.
func (s *Store) DeleteConversion(ctx context.Context, id string) error {
	tenantID := storage.GetTenant(ctx)

	query := "DELETE FROM conversions WHERE id = $1"
	args := []any{id}
	if tenantID != "" {
		query += " AND tenant_id = $2"
		args = append(args, tenantID)
	}

	result, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting conversion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListConversions returns a paginated list of records filtered by tenant
// and optionally by layout pair, with cursor-based pagination.
func (s *Store) ListConversions(ctx context.Context, opts transport.ListOptions) (*transport.ConversionList, error) {
	tenantID := storage.GetTenant(ctx)

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	asc := opts.Order == "asc"
	direction := "DESC"
	if asc {
		direction = "ASC"
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if tenantID != "" {
		conds = append(conds, "tenant_id = "+arg(tenantID))
	}
	if opts.From != "" {
		conds = append(conds, "from_layout = "+arg(opts.From))
	}
	if opts.To != "" {
		conds = append(conds, "to_layout = "+arg(opts.To))
	}

	// Cursor conditions use the (created_at, id) position of the cursor row.
	if opts.After != "" {
		cmp := "<"
		if asc {
			cmp = ">"
		}
		cursor := arg(opts.After)
		conds = append(conds, fmt.Sprintf(
			"(created_at, id) %s (SELECT created_at, id FROM conversions WHERE id = %s)", cmp, cursor))
	} else if opts.Before != "" {
		cmp := ">"
		if asc {
			cmp = "<"
		}
		cursor := arg(opts.Before)
		conds = append(conds, fmt.Sprintf(
			"(created_at, id) %s (SELECT created_at, id FROM conversions WHERE id = %s)", cmp, cursor))
	}

	query := "SELECT id, from_layout, to_layout, input_text, output_text, length, created_at FROM conversions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, id %s LIMIT %s",
		direction, direction, arg(limit+1))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var records []*api.Conversion
	for rows.Next() {
		var conv api.Conversion
		var inputText, outputText *string
		if err := rows.Scan(&conv.ID, &conv.From, &conv.To,
			&inputText, &outputText, &conv.Length, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		conv.Object = "conversion"
		if inputText != nil {
			conv.InputText = *inputText
		}
		if outputText != nil {
			conv.OutputText = *outputText
		}
		records = append(records, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading conversions: %w", err)
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	result := &transport.ConversionList{
		Object:  "list",
		Data:    records,
		HasMore: hasMore,
	}
	if len(records) > 0 {
		result.FirstID = records[0].ID
		result.LastID = records[len(records)-1].ID
	}
	if result.Data == nil {
		result.Data = []*api.Conversion{}
	}

	return result, nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// nullString converts an empty string to nil for nullable TEXT columns.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
