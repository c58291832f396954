package fatura

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tiss/tiss/internal/platform/cache"
	"github.com/tiss/tiss/internal/platform/store"
)

// Repo is the storage contract the service depends on for faturas.
type Repo interface {
	store.Base[Fatura]
}

// LinkRepo is the storage contract for fatura_guia rows.
type LinkRepo interface {
	store.Base[FaturaGuia]
}

var schema = store.Schema[Fatura]{
	Table:    "fatura",
	Resource: "fatura",
	Columns: []string{
		"numero_fatura", "data_emissao", "data_vencimento",
		"periodo_inicio", "periodo_fim", "prestador_id",
		"status", "valor_total", "observacoes", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Fatura, error) {
		var f Fatura
		err := row.Scan(
			&f.ID, &f.NumeroFatura, &f.DataEmissao, &f.DataVencimento,
			&f.PeriodoInicio, &f.PeriodoFim, &f.PrestadorID,
			&f.Status, &f.ValorTotal, &f.Observacoes, &f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &f, nil
	},
	Values: func(f *Fatura) []any {
		return []any{
			f.NumeroFatura, f.DataEmissao, f.DataVencimento,
			f.PeriodoInicio, f.PeriodoFim, f.PrestadorID,
			f.Status, f.ValorTotal, f.Observacoes, f.CreatedAt, f.UpdatedAt,
		}
	},
	ID:    func(f *Fatura) int64 { return f.ID },
	SetID: func(f *Fatura, id int64) { f.ID = id },
	Filters: map[string]string{
		"numero_fatura": "numero_fatura",
		"status":        "status",
		"prestador_id":  "prestador_id",
	},
}

var linkSchema = store.Schema[FaturaGuia]{
	Table:    "fatura_guia",
	Resource: "fatura_guia",
	Columns:  []string{"fatura_id", "guia_id", "data_inclusao"},
	Scan: func(row pgx.Row) (*FaturaGuia, error) {
		var fg FaturaGuia
		if err := row.Scan(&fg.ID, &fg.FaturaID, &fg.GuiaID, &fg.DataInclusao); err != nil {
			return nil, err
		}
		return &fg, nil
	},
	Values: func(fg *FaturaGuia) []any {
		return []any{fg.FaturaID, fg.GuiaID, fg.DataInclusao}
	},
	ID:    func(fg *FaturaGuia) int64 { return fg.ID },
	SetID: func(fg *FaturaGuia, id int64) { fg.ID = id },
	Filters: map[string]string{
		"fatura_id": "fatura_id",
		"guia_id":   "guia_id",
	},
}

// NewRepo builds the cached PostgreSQL repository for faturas.
func NewRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) Repo {
	return store.NewCached(store.New(pool, schema), cs, schema, "Fatura", itemTTL, log)
}

// NewLinkRepo builds the cached PostgreSQL repository for fatura_guia links.
func NewLinkRepo(pool *pgxpool.Pool, cs cache.Store, itemTTL time.Duration, log zerolog.Logger) LinkRepo {
	return store.NewCached(store.New(pool, linkSchema), cs, linkSchema, "FaturaGuia", itemTTL, log)
}
