package autorizacao

import "time"

// CreateInput is the request body for creating an autorização.
// DataAutorizacao defaults to now and status to "pendente" when omitted.
type CreateInput struct {
	NumeroAutorizacao      string     `json:"numero_autorizacao"`
	DataAutorizacao        *time.Time `json:"data_autorizacao"`
	DataValidade           time.Time  `json:"data_validade"`
	ProcedimentoID         *int64     `json:"procedimento_id"`
	MaterialID             *int64     `json:"material_id"`
	TipoAutorizacao        string     `json:"tipo_autorizacao"`
	PrestadorExecutanteID  *int64     `json:"prestador_executante_id"`
	AprovadorIdentificador *string    `json:"aprovador_identificador"`
	Status                 string     `json:"status"`
	MotivoNegacao          *string    `json:"motivo_negacao"`
	Observacoes            *string    `json:"observacoes"`
}

func (in CreateInput) toModel() *Autorizacao {
	now := time.Now().UTC()
	dataAutorizacao := now
	if in.DataAutorizacao != nil {
		dataAutorizacao = *in.DataAutorizacao
	}
	status := in.Status
	if status == "" {
		status = "pendente"
	}
	return &Autorizacao{
		NumeroAutorizacao:      in.NumeroAutorizacao,
		DataAutorizacao:        dataAutorizacao,
		DataValidade:           in.DataValidade,
		ProcedimentoID:         in.ProcedimentoID,
		MaterialID:             in.MaterialID,
		TipoAutorizacao:        in.TipoAutorizacao,
		PrestadorExecutanteID:  in.PrestadorExecutanteID,
		AprovadorIdentificador: in.AprovadorIdentificador,
		Status:                 status,
		MotivoNegacao:          in.MotivoNegacao,
		Observacoes:            in.Observacoes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	NumeroAutorizacao      *string    `json:"numero_autorizacao"`
	DataAutorizacao        *time.Time `json:"data_autorizacao"`
	DataValidade           *time.Time `json:"data_validade"`
	ProcedimentoID         *int64     `json:"procedimento_id"`
	MaterialID             *int64     `json:"material_id"`
	TipoAutorizacao        *string    `json:"tipo_autorizacao"`
	PrestadorExecutanteID  *int64     `json:"prestador_executante_id"`
	AprovadorIdentificador *string    `json:"aprovador_identificador"`
	Status                 *string    `json:"status"`
	MotivoNegacao          *string    `json:"motivo_negacao"`
	Observacoes            *string    `json:"observacoes"`
}

func (in UpdateInput) apply(a *Autorizacao) {
	if in.NumeroAutorizacao != nil {
		a.NumeroAutorizacao = *in.NumeroAutorizacao
	}
	if in.DataAutorizacao != nil {
		a.DataAutorizacao = *in.DataAutorizacao
	}
	if in.DataValidade != nil {
		a.DataValidade = *in.DataValidade
	}
	if in.ProcedimentoID != nil {
		a.ProcedimentoID = in.ProcedimentoID
	}
	if in.MaterialID != nil {
		a.MaterialID = in.MaterialID
	}
	if in.TipoAutorizacao != nil {
		a.TipoAutorizacao = *in.TipoAutorizacao
	}
	if in.PrestadorExecutanteID != nil {
		a.PrestadorExecutanteID = in.PrestadorExecutanteID
	}
	if in.AprovadorIdentificador != nil {
		a.AprovadorIdentificador = in.AprovadorIdentificador
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.MotivoNegacao != nil {
		a.MotivoNegacao = in.MotivoNegacao
	}
	if in.Observacoes != nil {
		a.Observacoes = in.Observacoes
	}
}
