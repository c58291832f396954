package beneficiario

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
	store.Base[Beneficiario]
}

var schema = store.Schema[Beneficiario]{
	Table:    "beneficiario",
	Resource: "beneficiario",
	Columns:  []string{"identificador", "sexo", "data_nascimento", "created_at", "updated_at"},
	Scan: func(row pgx.Row) (*Beneficiario, error) {
		var b Beneficiario
		if err := row.Scan(&b.ID, &b.Identificador, &b.Sexo, &b.DataNascimento, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		return &b, nil
	},
	Values: func(b *Beneficiario) []any {
		return []any{b.Identificador, b.Sexo, b.DataNascimento, b.CreatedAt, b.UpdatedAt}
	},
	ID:    func(b *Beneficiario) int64 { return b.ID },
	SetID: func(b *Beneficiario, id int64) { b.ID = id },
	Filters: map[string]string{
		"identificador": "identificador",
		"sexo":          "sexo",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Beneficiario", itemTTL, log)
}
