package procedimento

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
	store.Base[Procedimento]
}

var schema = store.Schema[Procedimento]{
	Table:    "procedimento",
	Resource: "procedimento",
	Columns: []string{
		"guia_id", "codigo", "tipo_tabela", "descricao", "categoria",
		"data_realizacao", "prestador_executante_id", "quantidade",
		"valor_unitario", "observacoes", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Procedimento, error) {
		var p Procedimento
		err := row.Scan(
			&p.ID, &p.GuiaID, &p.Codigo, &p.TipoTabela, &p.Descricao, &p.Categoria,
			&p.DataRealizacao, &p.PrestadorExecutanteID, &p.Quantidade,
			&p.ValorUnitario, &p.Observacoes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &p, nil
	},
	Values: func(p *Procedimento) []any {
		return []any{
			p.GuiaID, p.Codigo, p.TipoTabela, p.Descricao, p.Categoria,
			p.DataRealizacao, p.PrestadorExecutanteID, p.Quantidade,
			p.ValorUnitario, p.Observacoes, p.CreatedAt, p.UpdatedAt,
		}
	},
	ID:    func(p *Procedimento) int64 { return p.ID },
	SetID: func(p *Procedimento, id int64) { p.ID = id },
	Filters: map[string]string{
		"guia_id":                 "guia_id",
		"codigo":                  "codigo",
		"tipo_tabela":             "tipo_tabela",
		"categoria":               "categoria",
		"prestador_executante_id": "prestador_executante_id",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Procedimento", itemTTL, log)
}
