package candidate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/atlas/internal/db"
)

// --- Mocks ---

type mockStore struct {
	result    *db.SearchResult
	err       error
	lastQuery *db.FilterQuery
}

func (m *mockStore) SearchFilter(_ context.Context, q *db.FilterQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func entry(id, name, rating, tierName, lat, lng string) db.SearchEntry {
	return db.SearchEntry{Fields: map[string]string{
		"id": id, "name": name, "rating": rating, "tier": tierName, "lat": lat, "lng": lng,
	}}
}

// --- Tests ---

func TestFetch_QueryIsStructurallyScoped(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{}}
	repo := New(store)

	_, err := repo.Fetch(context.Background(), []string{"a", "b"}, "acme", 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := store.lastQuery.Query
	for _, part := range []string{
		"@tenant:{acme}",
		"@id:{a|b}",
		"@tier:{featured|spotlight}",
		"@rating:[3.5 +inf]",
	} {
		if !strings.Contains(q, part) {
			t.Errorf("query missing %q: %s", part, q)
		}
	}
}

func TestFetch_ReordersToRequestedIDs(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			entry("b", "B", "4.0", "featured", "1", "1"),
			entry("a", "A", "4.5", "featured", "1", "1"),
		},
	}}
	repo := New(store)

	got, err := repo.Fetch(context.Background(), []string{"a", "b"}, "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "a" || got[1].ID() != "b" {
		t.Errorf("expected requested-id order [a b], got %v", got)
	}
}

func TestFetch_SkipsRowsWithoutID(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			entry("", "Nameless", "4.0", "featured", "1", "1"),
			entry("a", "A", "4.5", "featured", "1", "1"),
		},
	}}
	repo := New(store)

	got, err := repo.Fetch(context.Background(), []string{"a"}, "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID() != "a" {
		t.Errorf("expected only a, got %v", got)
	}
}

func TestFetch_UnparsableCoordinatesStayInvalid(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{
			entry("a", "A", "4.5", "spotlight", "garbage", "1"),
		},
	}}
	repo := New(store)

	got, err := repo.Fetch(context.Background(), []string{"a"}, "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected row kept for the guard, got %d", len(got))
	}
	if got[0].Coordinate().Valid() {
		t.Error("unparsable coordinate must hydrate as invalid")
	}
}

func TestFetch_EmptyIDs(t *testing.T) {
	store := &mockStore{}
	repo := New(store)

	got, err := repo.Fetch(context.Background(), nil, "acme", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if store.lastQuery != nil {
		t.Error("empty id set must not hit the store")
	}
}

func TestFetch_StoreError(t *testing.T) {
	repo := New(&mockStore{err: errors.New("down")})

	if _, err := repo.Fetch(context.Background(), []string{"a"}, "acme", 0); err == nil {
		t.Fatal("expected error")
	}
}
