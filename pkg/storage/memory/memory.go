// Package memory provides an in-memory implementation of
// transport.ConversionStore for testing and lightweight deployments.
// Records are lost when the process restarts. Optional LRU eviction
// limits memory usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/storage"
	"github.com/relayout-dev/relayout/pkg/transport"
)

// entry holds a stored conversion record and its metadata.
type entry struct {
	conv     *api.Conversion
	tenantID string
	lruElem  *list.Element // position in LRU list
}

// Store is an in-memory ConversionStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently used, back = least recently used
	maxSize int        // 0 = unlimited
}

// Ensure Store implements transport.ConversionStore at compile time.
var _ transport.ConversionStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest entry is evicted when the
// limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveConversion persists a conversion record in memory.
func (s *Store) SaveConversion(ctx context.Context, conv *api.Conversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[conv.ID]; exists {
		return storage.ErrConflict
	}

	tenantID := storage.GetTenant(ctx)

	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(conv.ID)
	s.entries[conv.ID] = &entry{
		conv:     conv,
		tenantID: tenantID,
		lruElem:  elem,
	}

	return nil
}

// GetConversion retrieves a record by ID. Returns ErrNotFound if the
// record does not exist. Scoped by tenant when a tenant is present in
// the context.
func (s *Store) GetConversion(ctx context.Context, id string) (*api.Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	tenantID := storage.GetTenant(ctx)
	if tenantID != "" && e.tenantID != tenantID {
		return nil, storage.ErrNotFound
	}

	return e.conv, nil
}

// DeleteConversion removes a record by ID.
func (s *Store) DeleteConversion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return storage.ErrNotFound
	}

	tenantID := storage.GetTenant(ctx)
	if tenantID != "" && e.tenantID != tenantID {
		return storage.ErrNotFound
	}

	s.lruList.Remove(e.lruElem)
	delete(s.entries, id)
	return nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// ListConversions returns a paginated list of stored records filtered by
// tenant and optionally by layout pair, with cursor-based pagination.
func (s *Store) ListConversions(ctx context.Context, opts transport.ListOptions) (*transport.ConversionList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID := storage.GetTenant(ctx)

	var matches []*api.Conversion
	for _, e := range s.entries {
		if tenantID != "" && e.tenantID != tenantID {
			continue
		}
		if opts.From != "" && e.conv.From != opts.From {
			continue
		}
		if opts.To != "" && e.conv.To != opts.To {
			continue
		}
		matches = append(matches, e.conv)
	}

	// Sort by created_at. Default is desc (newest first).
	asc := opts.Order == "asc"
	sort.Slice(matches, func(i, j int) bool {
		if asc {
			if matches[i].CreatedAt != matches[j].CreatedAt {
				return matches[i].CreatedAt < matches[j].CreatedAt
			}
			return matches[i].ID < matches[j].ID
		}
		if matches[i].CreatedAt != matches[j].CreatedAt {
			return matches[i].CreatedAt > matches[j].CreatedAt
		}
		return matches[i].ID > matches[j].ID
	})

	// Apply cursor-based pagination.
	if opts.After != "" {
		idx := -1
		for i, c := range matches {
			if c.ID == opts.After {
				idx = i
				break
			}
		}
		if idx >= 0 {
			matches = matches[idx+1:]
		} else {
			matches = nil
		}
	} else if opts.Before != "" {
		idx := -1
		for i, c := range matches {
			if c.ID == opts.Before {
				idx = i
				break
			}
		}
		if idx > 0 {
			matches = matches[:idx]
		} else {
			matches = nil
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	hasMore := len(matches) > limit
	if hasMore {
		matches = matches[:limit]
	}

	result := &transport.ConversionList{
		Object:  "list",
		Data:    matches,
		HasMore: hasMore,
	}
	if len(matches) > 0 {
		result.FirstID = matches[0].ID
		result.LastID = matches[len(matches)-1].ID
	}
	if result.Data == nil {
		result.Data = []*api.Conversion{}
	}

	return result, nil
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
