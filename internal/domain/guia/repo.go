package guia

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
	store.Base[Guia]
}

var schema = store.Schema[Guia]{
	Table:    "guia",
	Resource: "guia",
	Columns: []string{
		"numero_guia", "data_solicitacao", "indicacao_clinica",
		"tipo_atendimento", "beneficiario_id", "solicitante_id",
		"status", "valor_total", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Guia, error) {
		var g Guia
		err := row.Scan(
			&g.ID, &g.NumeroGuia, &g.DataSolicitacao, &g.IndicacaoClinica,
			&g.TipoAtendimento, &g.BeneficiarioID, &g.SolicitanteID,
			&g.Status, &g.ValorTotal, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &g, nil
	},
	Values: func(g *Guia) []any {
		return []any{
			g.NumeroGuia, g.DataSolicitacao, g.IndicacaoClinica,
			g.TipoAtendimento, g.BeneficiarioID, g.SolicitanteID,
			g.Status, g.ValorTotal, g.CreatedAt, g.UpdatedAt,
		}
	},
	ID:    func(g *Guia) int64 { return g.ID },
	SetID: func(g *Guia, id int64) { g.ID = id },
	Filters: map[string]string{
		"numero_guia":      "numero_guia",
		"status":           "status",
		"beneficiario_id":  "beneficiario_id",
		"tipo_atendimento": "tipo_atendimento",
		"solicitante_id":   "solicitante_id",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Guia", itemTTL, log)
}
