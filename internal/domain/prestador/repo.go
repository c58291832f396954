package prestador

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tiss/tiss/internal/platform/cache"
	"github.com/tiss/tiss/internal/platform/store"
)

// Repo is the storage contract the service depends on.
type Repo interface {
	store.Base[Prestador]
}

var schema = store.Schema[Prestador]{
	Table:    "prestador",
	Resource: "prestador",
	Columns:  []string{"nome", "cnpj", "endereco", "created_at", "updated_at"},
	Scan: func(row pgx.Row) (*Prestador, error) {
		var p Prestador
		if err := row.Scan(&p.ID, &p.Nome, &p.CNPJ, &p.Endereco, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		return &p, nil
	},
	Values: func(p *Prestador) []any {
		return []any{p.Nome, p.CNPJ, p.Endereco, p.CreatedAt, p.UpdatedAt}
	},
	ID:    func(p *Prestador) int64 { return p.ID },
	SetID: func(p *Prestador, id int64) { p.ID = id },
	Filters: map[string]string{
		"cnpj": "cnpj",
		"nome": "nome",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Prestador", itemTTL, log)
}
