package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/internal/platform/cache"
	"github.com/tiss/tiss/internal/platform/db"
	"github.com/tiss/tiss/pkg/pagination"
)

const (
	// ListTTL bounds staleness of cached pages. Item reads live longer
	// because single rows are dropped precisely on every write.
	ListTTL        = 5 * time.Minute
	DefaultItemTTL = 30 * time.Minute
)

// page is the cached form of a List or Search result.
type page[T any] struct {
	Items []*T `msgpack:"items"`
	Total int  `msgpack:"total"`
}

// Cached decorates a Base with cache-aside reads and write-through
// invalidation. Every list/search key handed out is tracked so a write can
// drop all pages that may contain the touched row. Inside a transaction the
// cache is bypassed entirely and invalidation is deferred to the commit.
type Cached[T any] struct {
	base    Base[T]
	store   cache.Store
	schema  Schema[T]
	entity  string
	itemTTL time.Duration
	log     zerolog.Logger

	listKeys sync.Map // key -> struct{}
}

// NewCached wraps base. entity names the cached type inside keys; itemTTL
// zero or below falls back to DefaultItemTTL.
func NewCached[T any](base Base[T], cs cache.Store, schema Schema[T], entity string, itemTTL time.Duration, log zerolog.Logger) *Cached[T] {
	if itemTTL <= 0 {
		itemTTL = DefaultItemTTL
	}
	return &Cached[T]{
		base:    base,
		store:   cs,
		schema:  schema,
		entity:  entity,
		itemTTL: itemTTL,
		log:     log,
	}
}

func (c *Cached[T]) Create(ctx context.Context, entity *T) error {
	if err := c.base.Create(ctx, entity); err != nil {
		return err
	}
	db.AfterCommit(ctx, func(ctx context.Context) {
		c.invalidateLists(ctx)
	})
	return nil
}

func (c *Cached[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if db.TxFromContext(ctx) != nil {
		return c.base.GetByID(ctx, id)
	}

	key := c.key("read", id)
	if entity, ok := c.getItem(ctx, key); ok {
		return entity, nil
	}

	entity, err := c.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.setValue(ctx, key, entity, c.itemTTL)
	return entity, nil
}

func (c *Cached[T]) List(ctx context.Context, p pagination.Params) ([]*T, int, error) {
	if db.TxFromContext(ctx) != nil {
		return c.base.List(ctx, p)
	}

	key := c.key("list", p)
	if pg, ok := c.getPage(ctx, key); ok {
		return pg.Items, pg.Total, nil
	}

	items, total, err := c.base.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	c.listKeys.Store(key, struct{}{})
	c.setValue(ctx, key, page[T]{Items: items, Total: total}, ListTTL)
	return items, total, nil
}

func (c *Cached[T]) Search(ctx context.Context, filters map[string]string, p *pagination.Params) ([]*T, int, error) {
	if db.TxFromContext(ctx) != nil {
		return c.base.Search(ctx, filters, p)
	}

	key := c.key("search", filters, p)
	if pg, ok := c.getPage(ctx, key); ok {
		return pg.Items, pg.Total, nil
	}

	items, total, err := c.base.Search(ctx, filters, p)
	if err != nil {
		return nil, 0, err
	}
	c.listKeys.Store(key, struct{}{})
	c.setValue(ctx, key, page[T]{Items: items, Total: total}, ListTTL)
	return items, total, nil
}

func (c *Cached[T]) Update(ctx context.Context, entity *T) error {
	if err := c.base.Update(ctx, entity); err != nil {
		return err
	}
	id := c.schema.ID(entity)
	db.AfterCommit(ctx, func(ctx context.Context) {
		c.store.Delete(ctx, c.key("read", id))
		c.invalidateLists(ctx)
	})
	return nil
}

func (c *Cached[T]) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := c.base.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	db.AfterCommit(ctx, func(ctx context.Context) {
		c.store.Delete(ctx, c.key("read", id))
		c.invalidateLists(ctx)
	})
	return true, nil
}

func (c *Cached[T]) key(operation string, args ...any) string {
	return Key(c.schema.Table, c.entity, operation, args...)
}

func (c *Cached[T]) getItem(ctx context.Context, key string) (*T, bool) {
	b, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var entity T
	if err := msgpack.Unmarshal(b, &entity); err != nil {
		c.log.Warn().Err(apperr.CacheFailure("decode entity", err)).Str("key", key).Msg("cache entry discarded")
		return nil, false
	}
	return &entity, true
}

func (c *Cached[T]) getPage(ctx context.Context, key string) (page[T], bool) {
	b, ok := c.store.Get(ctx, key)
	if !ok {
		return page[T]{}, false
	}
	var pg page[T]
	if err := msgpack.Unmarshal(b, &pg); err != nil {
		c.log.Warn().Err(apperr.CacheFailure("decode page", err)).Str("key", key).Msg("cache entry discarded")
		return page[T]{}, false
	}
	return pg, true
}

func (c *Cached[T]) setValue(ctx context.Context, key string, v any, ttl time.Duration) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		c.log.Warn().Err(apperr.CacheFailure("encode", err)).Str("key", key).Msg("cache write skipped")
		return
	}
	c.store.Set(ctx, key, b, ttl)
}

// invalidateLists drops every list/search page handed out so far.
func (c *Cached[T]) invalidateLists(ctx context.Context) {
	var keys []string
	c.listKeys.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		c.listKeys.Delete(k)
		return true
	})
	c.store.Delete(ctx, keys...)
}
