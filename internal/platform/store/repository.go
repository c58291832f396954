package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/internal/platform/db"
	"github.com/tiss/tiss/pkg/pagination"
)

// Schema describes how one entity maps onto its table.
type Schema[T any] struct {
	// Table is the table name; Resource names the entity in errors.
	Table    string
	Resource string
	// Columns lists every column except id, in the order Values returns them.
	Columns []string
	// Scan reads one row laid out as id followed by Columns.
	Scan func(row pgx.Row) (*T, error)
	// Values returns the entity's column values in Columns order.
	Values func(*T) []any
	// ID and SetID access the surrogate key.
	ID    func(*T) int64
	SetID func(*T, int64)
	// Filters maps public search keys to columns. Unknown keys are rejected.
	Filters map[string]string
}

// Base is the operation set shared by Repository and Cached.
type Base[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, p pagination.Params) ([]*T, int, error)
	Search(ctx context.Context, filters map[string]string, p *pagination.Params) ([]*T, int, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Repository implements the storage operations for one entity on PostgreSQL.
type Repository[T any] struct {
	pool   *pgxpool.Pool
	schema Schema[T]
}

func New[T any](pool *pgxpool.Pool, schema Schema[T]) *Repository[T] {
	return &Repository[T]{pool: pool, schema: schema}
}

// conn prefers a transaction carried on the context so multi-entity writes
// stay atomic.
func (r *Repository[T]) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	cols := r.schema.Columns
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.schema.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	var id int64
	if err := r.conn(ctx).QueryRow(ctx, query, r.schema.Values(entity)...).Scan(&id); err != nil {
		return r.wrap("insert "+r.schema.Table, err)
	}
	r.schema.SetID(entity, id)
	return nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE id = $1",
		strings.Join(r.schema.Columns, ", "), r.schema.Table)

	entity, err := r.schema.Scan(r.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(r.schema.Resource, id)
		}
		return nil, r.wrap("select "+r.schema.Table, err)
	}
	return entity, nil
}

// List returns one page ordered by id, plus the total row count.
func (r *Repository[T]) List(ctx context.Context, p pagination.Params) ([]*T, int, error) {
	return r.Search(ctx, nil, &p)
}

// Search returns rows matching the equality filters. A nil p disables
// pagination for internal lookups that need the full match set.
func (r *Repository[T]) Search(ctx context.Context, filters map[string]string, p *pagination.Params) ([]*T, int, error) {
	where, args, err := whereClause(r.schema.Filters, filters)
	if err != nil {
		return nil, 0, err
	}

	conn := r.conn(ctx)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.schema.Table, where)
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, r.wrap("count "+r.schema.Table, err)
	}

	query := fmt.Sprintf("SELECT id, %s FROM %s%s ORDER BY id",
		strings.Join(r.schema.Columns, ", "), r.schema.Table, where)
	if p != nil {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", p.PerPage, p.Offset())
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.wrap("select "+r.schema.Table, err)
	}
	defer rows.Close()

	var items []*T
	for rows.Next() {
		entity, err := r.schema.Scan(rows)
		if err != nil {
			return nil, 0, r.wrap("scan "+r.schema.Table, err)
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.wrap("iterate "+r.schema.Table, err)
	}

	return items, total, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	cols := r.schema.Columns
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		r.schema.Table, strings.Join(sets, ", "), len(cols)+1)

	args := append(r.schema.Values(entity), r.schema.ID(entity))
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return r.wrap("update "+r.schema.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(r.schema.Resource, r.schema.ID(entity))
	}
	return nil
}

// Delete reports whether a row was removed. A missing id is not an error.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.schema.Table)
	tag, err := r.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return false, r.wrap("delete "+r.schema.Table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// wrap translates constraint violations into conflicts and everything else
// into storage errors.
func (r *Repository[T]) wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.Detail != "" {
				return apperr.Conflictf("%s already exists: %s", r.schema.Resource, pgErr.Detail)
			}
			return apperr.Conflictf("%s violates unique constraint %s", r.schema.Resource, pgErr.ConstraintName)
		case "23503":
			return apperr.Conflictf("%s references a missing row (%s)", r.schema.Resource, pgErr.ConstraintName)
		case "22P02":
			return apperr.Validationf("valor de filtro inválido para %s", r.schema.Resource)
		}
	}
	return apperr.Storage(op, err)
}

// whereClause builds an equality WHERE chain from public filter keys in
// sorted order, rejecting keys missing from the allow-list.
func whereClause(allowed map[string]string, filters map[string]string) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conds []string
	var args []any
	for _, k := range keys {
		col, ok := allowed[k]
		if !ok {
			return "", nil, apperr.Validationf("campo de filtro desconhecido: %s", k)
		}
		args = append(args, filters[k])
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
