package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/relayout-dev/relayout/pkg/api"
	"github.com/relayout-dev/relayout/pkg/storage"
	"github.com/relayout-dev/relayout/pkg/transport"
)

func record(id string, createdAt int64) *api.Conversion {
	return &api.Conversion{
		ID:        id,
		Object:    "conversion",
		From:      "qwerty",
		To:        "dvorak",
		Length:    5,
		CreatedAt: createdAt,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	conv := record("conv_aaaaaaaaaaaaaaaaaaaaaaaa", 1)
	if err := s.SaveConversion(ctx, conv); err != nil {
		t.Fatalf("SaveConversion: %v", err)
	}

	got, err := s.GetConversion(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversion: %v", err)
	}
	if got.ID != conv.ID || got.From != "qwerty" {
		t.Errorf("got %+v, want saved record", got)
	}

	if err := s.SaveConversion(ctx, conv); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("duplicate save error = %v, want ErrConflict", err)
	}

	if _, err := s.GetConversion(ctx, "conv_bbbbbbbbbbbbbbbbbbbbbbbb"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing get error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	conv := record("conv_aaaaaaaaaaaaaaaaaaaaaaaa", 1)
	if err := s.SaveConversion(ctx, conv); err != nil {
		t.Fatalf("SaveConversion: %v", err)
	}

	if err := s.DeleteConversion(ctx, conv.ID); err != nil {
		t.Fatalf("DeleteConversion: %v", err)
	}
	if _, err := s.GetConversion(ctx, conv.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteConversion(ctx, conv.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestLRUEviction(t *testing.T) {
	s := New(2)
	ctx := context.Background()

	ids := []string{
		"conv_aaaaaaaaaaaaaaaaaaaaaaaa",
		"conv_bbbbbbbbbbbbbbbbbbbbbbbb",
		"conv_cccccccccccccccccccccccc",
	}
	for i, id := range ids {
		if err := s.SaveConversion(ctx, record(id, int64(i))); err != nil {
			t.Fatalf("SaveConversion(%s): %v", id, err)
		}
	}

	// The first record should have been evicted.
	if _, err := s.GetConversion(ctx, ids[0]); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("oldest record still present, want eviction")
	}
	for _, id := range ids[1:] {
		if _, err := s.GetConversion(ctx, id); err != nil {
			t.Errorf("GetConversion(%s): %v", id, err)
		}
	}
}

func TestTenantScoping(t *testing.T) {
	s := New(0)
	ctxA := storage.SetTenant(context.Background(), "tenant-a")
	ctxB := storage.SetTenant(context.Background(), "tenant-b")

	conv := record("conv_aaaaaaaaaaaaaaaaaaaaaaaa", 1)
	if err := s.SaveConversion(ctxA, conv); err != nil {
		t.Fatalf("SaveConversion: %v", err)
	}

	if _, err := s.GetConversion(ctxA, conv.ID); err != nil {
		t.Errorf("owner tenant get: %v", err)
	}
	if _, err := s.GetConversion(ctxB, conv.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("foreign tenant get error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteConversion(ctxB, conv.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("foreign tenant delete error = %v, want ErrNotFound", err)
	}
}

func TestListConversions(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		conv := record(fmt.Sprintf("conv_%024d", i), int64(i))
		if i%2 == 1 {
			conv.To = "russian"
		}
		if err := s.SaveConversion(ctx, conv); err != nil {
			t.Fatalf("SaveConversion: %v", err)
		}
	}

	// Default order is newest first.
	list, err := s.ListConversions(ctx, transport.ListOptions{})
	if err != nil {
		t.Fatalf("ListConversions: %v", err)
	}
	if len(list.Data) != 5 {
		t.Fatalf("listed %d records, want 5", len(list.Data))
	}
	if list.Data[0].CreatedAt != 4 {
		t.Errorf("first record created_at = %d, want 4 (desc order)", list.Data[0].CreatedAt)
	}
	if list.HasMore {
		t.Error("HasMore = true, want false")
	}

	// Filter by target layout.
	list, err = s.ListConversions(ctx, transport.ListOptions{To: "russian"})
	if err != nil {
		t.Fatalf("ListConversions: %v", err)
	}
	if len(list.Data) != 2 {
		t.Errorf("filtered list has %d records, want 2", len(list.Data))
	}

	// Pagination with limit and cursor.
	list, err = s.ListConversions(ctx, transport.ListOptions{Limit: 2, Order: "asc"})
	if err != nil {
		t.Fatalf("ListConversions: %v", err)
	}
	if len(list.Data) != 2 || !list.HasMore {
		t.Fatalf("page 1: %d records, HasMore=%v; want 2, true", len(list.Data), list.HasMore)
	}
	list2, err := s.ListConversions(ctx, transport.ListOptions{Limit: 10, Order: "asc", After: list.LastID})
	if err != nil {
		t.Fatalf("ListConversions: %v", err)
	}
	if len(list2.Data) != 3 || list2.HasMore {
		t.Errorf("page 2: %d records, HasMore=%v; want 3, false", len(list2.Data), list2.HasMore)
	}
}
