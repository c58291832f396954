package store

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/pkg/pagination"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memStore) Delete(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
}

type fixture struct {
	ID   int64  `msgpack:"id"`
	Name string `msgpack:"name"`
}

type fakeBase struct {
	mu       sync.Mutex
	items    map[int64]*fixture
	nextID   int64
	reads    int
	lists    int
	searches int
}

func newFakeBase() *fakeBase {
	return &fakeBase{items: make(map[int64]*fixture)}
}

func (f *fakeBase) Create(_ context.Context, e *fixture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeBase) GetByID(_ context.Context, id int64) (*fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	e, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("fixture", id)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeBase) List(_ context.Context, _ pagination.Params) ([]*fixture, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]*fixture, 0, len(f.items))
	for _, e := range f.items {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(f.items), nil
}

func (f *fakeBase) Search(_ context.Context, filters map[string]string, _ *pagination.Params) ([]*fixture, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	var out []*fixture
	for _, e := range f.items {
		if name, ok := filters["name"]; ok && e.Name != name {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeBase) Update(_ context.Context, e *fixture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[e.ID]; !ok {
		return apperr.NotFound("fixture", e.ID)
	}
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeBase) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func newCachedFixture() (*Cached[fixture], *fakeBase, *memStore) {
	base := newFakeBase()
	ms := newMemStore()
	schema := Schema[fixture]{
		Table:    "fixtures",
		Resource: "fixture",
		ID:       func(e *fixture) int64 { return e.ID },
	}
	c := NewCached[fixture](base, ms, schema, "Fixture", time.Minute, zerolog.Nop())
	return c, base, ms
}

func TestCached_GetByIDServedFromCache(t *testing.T) {
	c, base, _ := newCachedFixture()
	ctx := context.Background()

	e := &fixture{Name: "alfa"}
	if err := c.Create(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := c.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if base.reads != 1 {
		t.Errorf("expected 1 base read, got %d", base.reads)
	}
	if first.Name != "alfa" || second.Name != "alfa" {
		t.Errorf("unexpected payloads: %+v, %+v", first, second)
	}
}

func TestCached_ListInvalidatedByCreate(t *testing.T) {
	c, base, _ := newCachedFixture()
	ctx := context.Background()
	p := pagination.New(1, 10)

	if err := c.Create(ctx, &fixture{Name: "alfa"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := c.List(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := c.List(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.lists != 1 {
		t.Fatalf("expected the second list to hit the cache, got %d base calls", base.lists)
	}

	if err := c.Create(ctx, &fixture{Name: "beta"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, total, err := c.List(ctx, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.lists != 2 {
		t.Errorf("expected create to invalidate the cached page, got %d base calls", base.lists)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 items after create, got %d (total %d)", len(items), total)
	}
}

func TestCached_UpdateDropsItemKey(t *testing.T) {
	c, base, _ := newCachedFixture()
	ctx := context.Background()

	e := &fixture{Name: "alfa"}
	if err := c.Create(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetByID(ctx, e.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.Name = "omega"
	if err := c.Update(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "omega" {
		t.Errorf("expected the updated row, got %q", got.Name)
	}
	if base.reads != 2 {
		t.Errorf("expected update to force a fresh read, got %d base reads", base.reads)
	}
}

func TestCached_DeleteMissingReturnsFalse(t *testing.T) {
	c, _, _ := newCachedFixture()

	ok, err := c.Delete(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for a missing id")
	}
}

func TestCached_DeleteDropsCaches(t *testing.T) {
	c, _, _ := newCachedFixture()
	ctx := context.Background()

	e := &fixture{Name: "alfa"}
	if err := c.Create(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetByID(ctx, e.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := c.Delete(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("expected a successful delete, got ok=%v err=%v", ok, err)
	}

	if _, err := c.GetByID(ctx, e.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestCached_CorruptEntryFallsThrough(t *testing.T) {
	c, base, ms := newCachedFixture()
	ctx := context.Background()

	e := &fixture{Name: "alfa"}
	if err := c.Create(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := Key("fixtures", "Fixture", "read", e.ID)
	ms.Set(ctx, key, []byte("not msgpack"), time.Minute)

	got, err := c.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "alfa" {
		t.Errorf("expected the row from storage, got %q", got.Name)
	}
	if base.reads != 1 {
		t.Errorf("expected the corrupt entry to fall through to storage, got %d reads", base.reads)
	}
}

func TestCached_SearchCachedPerFilterSet(t *testing.T) {
	c, base, _ := newCachedFixture()
	ctx := context.Background()
	p := pagination.New(1, 10)

	if err := c.Create(ctx, &fixture{Name: "alfa"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Create(ctx, &fixture{Name: "beta"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alfa := map[string]string{"name": "alfa"}
	beta := map[string]string{"name": "beta"}

	if _, _, err := c.Search(ctx, alfa, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := c.Search(ctx, alfa, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.searches != 1 {
		t.Fatalf("expected a cache hit for the repeated filter set, got %d", base.searches)
	}

	if _, _, err := c.Search(ctx, beta, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.searches != 2 {
		t.Fatalf("expected a distinct key per filter set, got %d", base.searches)
	}

	if err := c.Create(ctx, &fixture{Name: "gama"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := c.Search(ctx, alfa, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.searches != 3 {
		t.Errorf("expected create to drop every cached search, got %d", base.searches)
	}
}
