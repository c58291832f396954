package guia

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/internal/domain/autorizacao"
	"github.com/tiss/tiss/internal/domain/beneficiario"
	"github.com/tiss/tiss/internal/domain/material"
	"github.com/tiss/tiss/internal/domain/procedimento"
	"github.com/tiss/tiss/internal/domain/profissional"
	"github.com/tiss/tiss/internal/platform/db"
)

// Composite persists a full claim graph in one transaction: beneficiário,
// solicitante, guia, then each procedimento with its materiais and
// autorização, in strict dependency order. Any failure rolls everything back.
type Composite struct {
	pool          *pgxpool.Pool
	guias         *Service
	beneficiarios *beneficiario.Service
	profissionais *profissional.Service
	procedimentos *procedimento.Service
	materiais     *material.Service
	autorizacoes  *autorizacao.Service
}

func NewComposite(
	pool *pgxpool.Pool,
	guias *Service,
	beneficiarios *beneficiario.Service,
	profissionais *profissional.Service,
	procedimentos *procedimento.Service,
	materiais *material.Service,
	autorizacoes *autorizacao.Service,
) *Composite {
	return &Composite{
		pool:          pool,
		guias:         guias,
		beneficiarios: beneficiarios,
		profissionais: profissionais,
		procedimentos: procedimentos,
		materiais:     materiais,
		autorizacoes:  autorizacoes,
	}
}

// CompletaProcedimento is one procedure of the claim, optionally carrying
// its materiais and an autorização.
type CompletaProcedimento struct {
	Procedimento procedimento.CreateInput `json:"procedimento"`
	Materiais    []material.CreateInput   `json:"materiais"`
	Autorizacao  *autorizacao.CreateInput `json:"autorizacao"`
}

// CompletaInput is the request body of POST /guias/completa. The
// beneficiário and solicitante are matched to existing rows before being
// created, so claims for known people do not duplicate them.
type CompletaInput struct {
	Guia          CreateInput               `json:"guia"`
	Beneficiario  beneficiario.CreateInput  `json:"beneficiario"`
	Solicitante   *profissional.CreateInput `json:"profissional_solicitante"`
	Procedimentos []CompletaProcedimento    `json:"procedimentos"`
}

// CompletaItem echoes one created procedure with its children.
type CompletaItem struct {
	Procedimento *procedimento.Procedimento `json:"procedimento"`
	Materiais    []*material.Material       `json:"materiais,omitempty"`
	Autorizacao  *autorizacao.Autorizacao   `json:"autorizacao,omitempty"`
}

// CompletaResult is the created claim graph with every id assigned.
type CompletaResult struct {
	Guia          *Guia                      `json:"guia"`
	Beneficiario  *beneficiario.Beneficiario `json:"beneficiario"`
	Solicitante   *profissional.Profissional `json:"profissional_solicitante,omitempty"`
	Procedimentos []CompletaItem             `json:"procedimentos"`
}

// Create persists the claim graph. The parent ids flow top-down: the
// beneficiário (reused by identificador) and solicitante (reused by council
// registration) wire into the guia, the guia into each procedimento, and
// each procedimento into its materiais and autorização.
func (c *Composite) Create(ctx context.Context, in CompletaInput) (*CompletaResult, error) {
	if len(in.Procedimentos) == 0 {
		return nil, apperr.Validation("Guia completa requer ao menos um procedimento")
	}

	var result *CompletaResult
	err := db.InTx(ctx, c.pool, func(ctx context.Context) error {
		ben, err := c.beneficiarios.GetOrCreate(ctx, in.Beneficiario)
		if err != nil {
			return err
		}

		var sol *profissional.Profissional
		if in.Solicitante != nil {
			sol, err = c.profissionais.GetOrCreate(ctx, *in.Solicitante)
			if err != nil {
				return err
			}
		}

		guiaIn := in.Guia
		guiaIn.BeneficiarioID = ben.ID
		if sol != nil {
			guiaIn.SolicitanteID = &sol.ID
		}
		g, err := c.guias.Create(ctx, guiaIn)
		if err != nil {
			return err
		}

		items := make([]CompletaItem, 0, len(in.Procedimentos))
		for _, procItem := range in.Procedimentos {
			procIn := procItem.Procedimento
			procIn.GuiaID = g.ID
			proc, err := c.procedimentos.Create(ctx, procIn)
			if err != nil {
				return err
			}

			item := CompletaItem{Procedimento: proc}
			for _, matIn := range procItem.Materiais {
				matIn.ProcedimentoID = proc.ID
				mat, err := c.materiais.Create(ctx, matIn)
				if err != nil {
					return err
				}
				item.Materiais = append(item.Materiais, mat)
			}
			if procItem.Autorizacao != nil {
				autIn := *procItem.Autorizacao
				autIn.ProcedimentoID = &proc.ID
				autIn.MaterialID = nil
				if autIn.TipoAutorizacao == "" {
					autIn.TipoAutorizacao = "procedimento"
				}
				aut, err := c.autorizacoes.Create(ctx, autIn)
				if err != nil {
					return err
				}
				item.Autorizacao = aut
			}
			items = append(items, item)
		}

		result = &CompletaResult{
			Guia:          g,
			Beneficiario:  ben,
			Solicitante:   sol,
			Procedimentos: items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
