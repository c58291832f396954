package procedimento

import "time"

// CreateInput is the request body for creating a procedimento. Quantidade
// defaults to 1 when omitted.
type CreateInput struct {
	GuiaID                int64      `json:"guia_id"`
	Codigo                string     `json:"codigo"`
	TipoTabela            string     `json:"tipo_tabela"`
	Descricao             string     `json:"descricao"`
	Categoria             string     `json:"categoria"`
	DataRealizacao        *time.Time `json:"data_realizacao"`
	PrestadorExecutanteID *int64     `json:"prestador_executante_id"`
	Quantidade            *int       `json:"quantidade"`
	ValorUnitario         float64    `json:"valor_unitario"`
	Observacoes           *string    `json:"observacoes"`
}

func (in CreateInput) toModel() *Procedimento {
	now := time.Now().UTC()
	quantidade := 1
	if in.Quantidade != nil {
		quantidade = *in.Quantidade
	}
	return &Procedimento{
		GuiaID:                in.GuiaID,
		Codigo:                in.Codigo,
		TipoTabela:            in.TipoTabela,
		Descricao:             in.Descricao,
		Categoria:             in.Categoria,
		DataRealizacao:        in.DataRealizacao,
		PrestadorExecutanteID: in.PrestadorExecutanteID,
		Quantidade:            quantidade,
		ValorUnitario:         in.ValorUnitario,
		Observacoes:           in.Observacoes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	GuiaID                *int64     `json:"guia_id"`
	Codigo                *string    `json:"codigo"`
	TipoTabela            *string    `json:"tipo_tabela"`
	Descricao             *string    `json:"descricao"`
	Categoria             *string    `json:"categoria"`
	DataRealizacao        *time.Time `json:"data_realizacao"`
	PrestadorExecutanteID *int64     `json:"prestador_executante_id"`
	Quantidade            *int       `json:"quantidade"`
	ValorUnitario         *float64   `json:"valor_unitario"`
	Observacoes           *string    `json:"observacoes"`
}

func (in UpdateInput) apply(p *Procedimento) {
	if in.GuiaID != nil {
		p.GuiaID = *in.GuiaID
	}
	if in.Codigo != nil {
		p.Codigo = *in.Codigo
	}
	if in.TipoTabela != nil {
		p.TipoTabela = *in.TipoTabela
	}
	if in.Descricao != nil {
		p.Descricao = *in.Descricao
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.DataRealizacao != nil {
		p.DataRealizacao = in.DataRealizacao
	}
	if in.PrestadorExecutanteID != nil {
		p.PrestadorExecutanteID = in.PrestadorExecutanteID
	}
	if in.Quantidade != nil {
		p.Quantidade = *in.Quantidade
	}
	if in.ValorUnitario != nil {
		p.ValorUnitario = *in.ValorUnitario
	}
	if in.Observacoes != nil {
		p.Observacoes = in.Observacoes
	}
}
