package autorizacao

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
	store.Base[Autorizacao]
}

var schema = store.Schema[Autorizacao]{
	Table:    "autorizacao",
	Resource: "autorizacao",
	Columns: []string{
		"numero_autorizacao", "data_autorizacao", "data_validade",
		"procedimento_id", "material_id", "tipo_autorizacao",
		"prestador_executante_id", "aprovador_identificador", "status",
		"motivo_negacao", "observacoes", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Autorizacao, error) {
		var a Autorizacao
		err := row.Scan(
			&a.ID, &a.NumeroAutorizacao, &a.DataAutorizacao, &a.DataValidade,
			&a.ProcedimentoID, &a.MaterialID, &a.TipoAutorizacao,
			&a.PrestadorExecutanteID, &a.AprovadorIdentificador, &a.Status,
			&a.MotivoNegacao, &a.Observacoes, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &a, nil
	},
	Values: func(a *Autorizacao) []any {
		return []any{
			a.NumeroAutorizacao, a.DataAutorizacao, a.DataValidade,
			a.ProcedimentoID, a.MaterialID, a.TipoAutorizacao,
			a.PrestadorExecutanteID, a.AprovadorIdentificador, a.Status,
			a.MotivoNegacao, a.Observacoes, a.CreatedAt, a.UpdatedAt,
		}
	},
	ID:    func(a *Autorizacao) int64 { return a.ID },
	SetID: func(a *Autorizacao, id int64) { a.ID = id },
	Filters: map[string]string{
		"numero_autorizacao": "numero_autorizacao",
		"status":             "status",
		"procedimento_id":    "procedimento_id",
		"material_id":        "material_id",
		"tipo_autorizacao":   "tipo_autorizacao",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Autorizacao", itemTTL, log)
}
