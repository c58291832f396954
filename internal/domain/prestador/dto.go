package prestador

import "time"

// CreateInput is the request body for creating a prestador.
type CreateInput struct {
	Nome     string  `json:"nome"`
	CNPJ     string  `json:"cnpj"`
	Endereco *string `json:"endereco"`
}

func (in CreateInput) toModel() *Prestador {
	now := time.Now().UTC()
	return &Prestador{
		Nome:      in.Nome,
		CNPJ:      in.CNPJ,
		Endereco:  in.Endereco,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	Nome     *string `json:"nome"`
	CNPJ     *string `json:"cnpj"`
	Endereco *string `json:"endereco"`
}

func (in UpdateInput) apply(p *Prestador) {
	if in.Nome != nil {
		p.Nome = *in.Nome
	}
	if in.CNPJ != nil {
		p.CNPJ = *in.CNPJ
	}
	if in.Endereco != nil {
		p.Endereco = in.Endereco
	}
}
