package guia

import "time"

// CreateInput is the request body for creating a guia. DataSolicitacao
// defaults to now and status to "solicitada" when omitted.
type CreateInput struct {
	NumeroGuia       string     `json:"numero_guia"`
	DataSolicitacao  *time.Time `json:"data_solicitacao"`
	IndicacaoClinica *string    `json:"indicacao_clinica"`
	TipoAtendimento  string     `json:"tipo_atendimento"`
	BeneficiarioID   int64      `json:"beneficiario_id"`
	SolicitanteID    *int64     `json:"solicitante_id"`
	Status           string     `json:"status"`
	ValorTotal       float64    `json:"valor_total"`
}

func (in CreateInput) toModel() *Guia {
	now := time.Now().UTC()
	dataSolicitacao := now
	if in.DataSolicitacao != nil {
		dataSolicitacao = *in.DataSolicitacao
	}
	status := in.Status
	if status == "" {
		status = "solicitada"
	}
	return &Guia{
		NumeroGuia:       in.NumeroGuia,
		DataSolicitacao:  dataSolicitacao,
		IndicacaoClinica: in.IndicacaoClinica,
		TipoAtendimento:  in.TipoAtendimento,
		BeneficiarioID:   in.BeneficiarioID,
		SolicitanteID:    in.SolicitanteID,
		Status:           status,
		ValorTotal:       in.ValorTotal,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	NumeroGuia       *string    `json:"numero_guia"`
	DataSolicitacao  *time.Time `json:"data_solicitacao"`
	IndicacaoClinica *string    `json:"indicacao_clinica"`
	TipoAtendimento  *string    `json:"tipo_atendimento"`
	BeneficiarioID   *int64     `json:"beneficiario_id"`
	SolicitanteID    *int64     `json:"solicitante_id"`
	Status           *string    `json:"status"`
	ValorTotal       *float64   `json:"valor_total"`
}

func (in UpdateInput) apply(g *Guia) {
	if in.NumeroGuia != nil {
		g.NumeroGuia = *in.NumeroGuia
	}
	if in.DataSolicitacao != nil {
		g.DataSolicitacao = *in.DataSolicitacao
	}
	if in.IndicacaoClinica != nil {
		g.IndicacaoClinica = in.IndicacaoClinica
	}
	if in.TipoAtendimento != nil {
		g.TipoAtendimento = *in.TipoAtendimento
	}
	if in.BeneficiarioID != nil {
		g.BeneficiarioID = *in.BeneficiarioID
	}
	if in.SolicitanteID != nil {
		g.SolicitanteID = in.SolicitanteID
	}
	if in.Status != nil {
		g.Status = *in.Status
	}
	if in.ValorTotal != nil {
		g.ValorTotal = *in.ValorTotal
	}
}
