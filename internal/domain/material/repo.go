package material

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
	store.Base[Material]
}

var schema = store.Schema[Material]{
	Table:    "material",
	Resource: "material",
	Columns: []string{
		"procedimento_id", "codigo_material", "descricao", "tipo_tabela",
		"quantidade_solicitada", "quantidade_autorizada", "quantidade_utilizada",
		"valor_unitario", "status", "motivo_glosa", "justificativa",
		"lote", "data_validade_lote", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Material, error) {
		var m Material
		err := row.Scan(
			&m.ID, &m.ProcedimentoID, &m.CodigoMaterial, &m.Descricao, &m.TipoTabela,
			&m.QuantidadeSolicitada, &m.QuantidadeAutorizada, &m.QuantidadeUtilizada,
			&m.ValorUnitario, &m.Status, &m.MotivoGlosa, &m.Justificativa,
			&m.Lote, &m.DataValidadeLote, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &m, nil
	},
	Values: func(m *Material) []any {
		return []any{
			m.ProcedimentoID, m.CodigoMaterial, m.Descricao, m.TipoTabela,
			m.QuantidadeSolicitada, m.QuantidadeAutorizada, m.QuantidadeUtilizada,
			m.ValorUnitario, m.Status, m.MotivoGlosa, m.Justificativa,
			m.Lote, m.DataValidadeLote, m.CreatedAt, m.UpdatedAt,
		}
	},
	ID:    func(m *Material) int64 { return m.ID },
	SetID: func(m *Material, id int64) { m.ID = id },
	Filters: map[string]string{
		"procedimento_id": "procedimento_id",
		"status":          "status",
		"codigo_material": "codigo_material",
		"tipo_tabela":     "tipo_tabela",
	},
}

// NewRepo builds the cached PostgreSQL repository.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Material", itemTTL, log)
}
