package material

import "time"

// CreateInput is the request body for creating a material. Status defaults
// to "solicitado" when omitted.
type CreateInput struct {
	ProcedimentoID       int64      `json:"procedimento_id"`
	CodigoMaterial       string     `json:"codigo_material"`
	Descricao            string     `json:"descricao"`
	TipoTabela           string     `json:"tipo_tabela"`
	QuantidadeSolicitada int        `json:"quantidade_solicitada"`
	QuantidadeAutorizada *int       `json:"quantidade_autorizada"`
	QuantidadeUtilizada  *int       `json:"quantidade_utilizada"`
	ValorUnitario        float64    `json:"valor_unitario"`
	Status               string     `json:"status"`
	MotivoGlosa          *string    `json:"motivo_glosa"`
	Justificativa        *string    `json:"justificativa"`
	Lote                 *string    `json:"lote"`
	DataValidadeLote     *time.Time `json:"data_validade_lote"`
}

func (in CreateInput) toModel() *Material {
	now := time.Now().UTC()
	status := in.Status
	if status == "" {
		status = "solicitado"
	}
	return &Material{
		ProcedimentoID:       in.ProcedimentoID,
		CodigoMaterial:       in.CodigoMaterial,
		Descricao:            in.Descricao,
		TipoTabela:           in.TipoTabela,
		QuantidadeSolicitada: in.QuantidadeSolicitada,
		QuantidadeAutorizada: in.QuantidadeAutorizada,
		QuantidadeUtilizada:  in.QuantidadeUtilizada,
		ValorUnitario:        in.ValorUnitario,
		Status:               status,
		MotivoGlosa:          in.MotivoGlosa,
		Justificativa:        in.Justificativa,
		Lote:                 in.Lote,
		DataValidadeLote:     in.DataValidadeLote,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	ProcedimentoID       *int64     `json:"procedimento_id"`
	CodigoMaterial       *string    `json:"codigo_material"`
	Descricao            *string    `json:"descricao"`
	TipoTabela           *string    `json:"tipo_tabela"`
	QuantidadeSolicitada *int       `json:"quantidade_solicitada"`
	QuantidadeAutorizada *int       `json:"quantidade_autorizada"`
	QuantidadeUtilizada  *int       `json:"quantidade_utilizada"`
	ValorUnitario        *float64   `json:"valor_unitario"`
	Status               *string    `json:"status"`
	MotivoGlosa          *string    `json:"motivo_glosa"`
	Justificativa        *string    `json:"justificativa"`
	Lote                 *string    `json:"lote"`
	DataValidadeLote     *time.Time `json:"data_validade_lote"`
}

func (in UpdateInput) apply(m *Material) {
	if in.ProcedimentoID != nil {
		m.ProcedimentoID = *in.ProcedimentoID
	}
	if in.CodigoMaterial != nil {
		m.CodigoMaterial = *in.CodigoMaterial
	}
	if in.Descricao != nil {
		m.Descricao = *in.Descricao
	}
	if in.TipoTabela != nil {
		m.TipoTabela = *in.TipoTabela
	}
	if in.QuantidadeSolicitada != nil {
		m.QuantidadeSolicitada = *in.QuantidadeSolicitada
	}
	if in.QuantidadeAutorizada != nil {
		m.QuantidadeAutorizada = in.QuantidadeAutorizada
	}
	if in.QuantidadeUtilizada != nil {
		m.QuantidadeUtilizada = in.QuantidadeUtilizada
	}
	if in.ValorUnitario != nil {
		m.ValorUnitario = *in.ValorUnitario
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.MotivoGlosa != nil {
		m.MotivoGlosa = in.MotivoGlosa
	}
	if in.Justificativa != nil {
		m.Justificativa = in.Justificativa
	}
	if in.Lote != nil {
		m.Lote = in.Lote
	}
	if in.DataValidadeLote != nil {
		m.DataValidadeLote = in.DataValidadeLote
	}
}
