package profissional

import "time"

// CreateInput is the request body for creating a profissional solicitante.
type CreateInput struct {
	Nome                        string `json:"nome"`
	Conselho                    string `json:"conselho"`
	ConselhoEspecialidade       string `json:"conselho_especialidade"`
	UF                          string `json:"uf"`
	NumeroConselho              string `json:"numero_conselho"`
	NumeroConselhoEspecialidade string `json:"numero_conselho_especialidade"`
}

func (in CreateInput) toModel() *Profissional {
	now := time.Now().UTC()
	return &Profissional{
		Nome:                        in.Nome,
		Conselho:                    in.Conselho,
		ConselhoEspecialidade:       in.ConselhoEspecialidade,
		UF:                          in.UF,
		NumeroConselho:              in.NumeroConselho,
		NumeroConselhoEspecialidade: in.NumeroConselhoEspecialidade,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	Nome                        *string `json:"nome"`
	Conselho                    *string `json:"conselho"`
	ConselhoEspecialidade       *string `json:"conselho_especialidade"`
	UF                          *string `json:"uf"`
	NumeroConselho              *string `json:"numero_conselho"`
	NumeroConselhoEspecialidade *string `json:"numero_conselho_especialidade"`
}

func (in UpdateInput) apply(p *Profissional) {
	if in.Nome != nil {
		p.Nome = *in.Nome
	}
	if in.Conselho != nil {
		p.Conselho = *in.Conselho
	}
	if in.ConselhoEspecialidade != nil {
		p.ConselhoEspecialidade = *in.ConselhoEspecialidade
	}
	if in.UF != nil {
		p.UF = *in.UF
	}
	if in.NumeroConselho != nil {
		p.NumeroConselho = *in.NumeroConselho
	}
	if in.NumeroConselhoEspecialidade != nil {
		p.NumeroConselhoEspecialidade = *in.NumeroConselhoEspecialidade
	}
}
