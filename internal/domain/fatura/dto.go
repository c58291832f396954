package fatura

import "time"

// CreateInput is the request body for creating a fatura. DataEmissao defaults
// to now and status to "pendente" when omitted.
type CreateInput struct {
	NumeroFatura   string     `json:"numero_fatura"`
	DataEmissao    *time.Time `json:"data_emissao"`
	DataVencimento *time.Time `json:"data_vencimento"`
	PeriodoInicio  time.Time  `json:"periodo_inicio"`
	PeriodoFim     time.Time  `json:"periodo_fim"`
	PrestadorID    int64      `json:"prestador_id"`
	Status         string     `json:"status"`
	ValorTotal     float64    `json:"valor_total"`
	Observacoes    *string    `json:"observacoes"`
}

func (in CreateInput) toModel() *Fatura {
	now := time.Now().UTC()
	dataEmissao := now
	if in.DataEmissao != nil {
		dataEmissao = *in.DataEmissao
	}
	status := in.Status
	if status == "" {
		status = "pendente"
	}
	return &Fatura{
		NumeroFatura:   in.NumeroFatura,
		DataEmissao:    dataEmissao,
		DataVencimento: in.DataVencimento,
		PeriodoInicio:  in.PeriodoInicio,
		PeriodoFim:     in.PeriodoFim,
		PrestadorID:    in.PrestadorID,
		Status:         status,
		ValorTotal:     in.ValorTotal,
		Observacoes:    in.Observacoes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	NumeroFatura   *string    `json:"numero_fatura"`
	DataEmissao    *time.Time `json:"data_emissao"`
	DataVencimento *time.Time `json:"data_vencimento"`
	PeriodoInicio  *time.Time `json:"periodo_inicio"`
	PeriodoFim     *time.Time `json:"periodo_fim"`
	PrestadorID    *int64     `json:"prestador_id"`
	Status         *string    `json:"status"`
	ValorTotal     *float64   `json:"valor_total"`
	Observacoes    *string    `json:"observacoes"`
}

func (in UpdateInput) apply(f *Fatura) {
	if in.NumeroFatura != nil {
		f.NumeroFatura = *in.NumeroFatura
	}
	if in.DataEmissao != nil {
		f.DataEmissao = *in.DataEmissao
	}
	if in.DataVencimento != nil {
		f.DataVencimento = in.DataVencimento
	}
	if in.PeriodoInicio != nil {
		f.PeriodoInicio = *in.PeriodoInicio
	}
	if in.PeriodoFim != nil {
		f.PeriodoFim = *in.PeriodoFim
	}
	if in.PrestadorID != nil {
		f.PrestadorID = *in.PrestadorID
	}
	if in.Status != nil {
		f.Status = *in.Status
	}
	if in.ValorTotal != nil {
		f.ValorTotal = *in.ValorTotal
	}
	if in.Observacoes != nil {
		f.Observacoes = in.Observacoes
	}
}

// AddGuiaInput is the request body for linking a guia into the fatura.
// DataInclusao defaults to now when omitted.
type AddGuiaInput struct {
	GuiaID       int64      `json:"guia_id"`
	DataInclusao *time.Time `json:"data_inclusao"`
}

func (in AddGuiaInput) toLink(faturaID int64) *FaturaGuia {
	dataInclusao := time.Now().UTC()
	if in.DataInclusao != nil {
		dataInclusao = *in.DataInclusao
	}
	return &FaturaGuia{
		FaturaID:     faturaID,
		GuiaID:       in.GuiaID,
		DataInclusao: dataInclusao,
	}
}
