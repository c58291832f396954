package profissional

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
	store.Base[Profissional]
}

var schema = store.Schema[Profissional]{
	Table:    "profissional_solicitante",
	Resource: "profissional_solicitante",
	Columns: []string{
		"nome", "conselho", "conselho_especialidade", "uf",
		"numero_conselho", "numero_conselho_especialidade",
		"created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Profissional, error) {
		var p Profissional
		err := row.Scan(
			&p.ID, &p.Nome, &p.Conselho, &p.ConselhoEspecialidade, &p.UF,
			&p.NumeroConselho, &p.NumeroConselhoEspecialidade,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &p, nil
	},
	Values: func(p *Profissional) []any {
		return []any{
			p.Nome, p.Conselho, p.ConselhoEspecialidade, p.UF,
			p.NumeroConselho, p.NumeroConselhoEspecialidade,
			p.CreatedAt, p.UpdatedAt,
		}
	},
	ID:    func(p *Profissional) int64 { return p.ID },
	SetID: func(p *Profissional, id int64) { p.ID = id },
	Filters: map[string]string{
		"conselho":        "conselho",
		"uf":              "uf",
		"numero_conselho": "numero_conselho",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Profissional", itemTTL, log)
}
