package material

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Material maps to the material table: OPME and consumables attached to a
// procedimento. The solicitada/autorizada/utilizada trio tracks the request
// through the operadora's authorization, and glosa marks disallowed excess.
type Material struct {
	ID                   int64      `db:"id" json:"id" msgpack:"id"`
	ProcedimentoID       int64      `db:"procedimento_id" json:"procedimento_id" msgpack:"procedimento_id"`
	CodigoMaterial       string     `db:"codigo_material" json:"codigo_material" msgpack:"codigo_material"`
	Descricao            string     `db:"descricao" json:"descricao" msgpack:"descricao"`
	TipoTabela           string     `db:"tipo_tabela" json:"tipo_tabela" msgpack:"tipo_tabela"`
	QuantidadeSolicitada int        `db:"quantidade_solicitada" json:"quantidade_solicitada" msgpack:"quantidade_solicitada"`
	QuantidadeAutorizada *int       `db:"quantidade_autorizada" json:"quantidade_autorizada,omitempty" msgpack:"quantidade_autorizada"`
	QuantidadeUtilizada  *int       `db:"quantidade_utilizada" json:"quantidade_utilizada,omitempty" msgpack:"quantidade_utilizada"`
	ValorUnitario        float64    `db:"valor_unitario" json:"valor_unitario" msgpack:"valor_unitario"`
	Status               string     `db:"status" json:"status" msgpack:"status"`
	MotivoGlosa          *string    `db:"motivo_glosa" json:"motivo_glosa,omitempty" msgpack:"motivo_glosa"`
	Justificativa        *string    `db:"justificativa" json:"justificativa,omitempty" msgpack:"justificativa"`
	Lote                 *string    `db:"lote" json:"lote,omitempty" msgpack:"lote"`
	DataValidadeLote     *time.Time `db:"data_validade_lote" json:"data_validade_lote,omitempty" msgpack:"data_validade_lote"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var codigoRe = regexp.MustCompile(`^[A-Z0-9.\-]+$`)

var (
	tiposTabela = []string{"SIMPRO", "BRASINDICE", "ANVISA"}
	statuses    = []string{"solicitado", "autorizado", "utilizado", "glosado", "negado"}
)

// Validate normalizes the record in place and returns the first rule
// violation. Per-field rules run first; the cross-field rules start with the
// glosa check because it guards quantities the later rules assume coherent.
func (m *Material) Validate() error {
	// codigo_material
	codigo := strings.ToUpper(strings.TrimSpace(m.CodigoMaterial))
	if codigo == "" {
		return apperr.Validation("Código do material não pode ser vazio")
	}
	if utf8.RuneCountInString(codigo) < 4 {
		return apperr.Validation("Código do material deve ter no mínimo 4 caracteres")
	}
	if !codigoRe.MatchString(codigo) {
		return apperr.Validation("Código deve ser alfanumérico (A-Z, 0-9, ., -)")
	}
	m.CodigoMaterial = codigo

	// tipo_tabela
	tabela := strings.ToUpper(strings.TrimSpace(m.TipoTabela))
	if !contains(tiposTabela, tabela) {
		return apperr.Validation("Tipo de tabela deve ser um de: SIMPRO, BRASINDICE, ANVISA")
	}
	m.TipoTabela = tabela

	// quantidade_solicitada
	if m.QuantidadeSolicitada < 1 {
		return apperr.Validation("Quantidade solicitada deve ser no mínimo 1")
	}
	if m.QuantidadeSolicitada > 1000 {
		return apperr.Validation("Quantidade solicitada máxima é 1000 (verificar se correto)")
	}

	// quantidade_autorizada
	if m.QuantidadeAutorizada != nil {
		if *m.QuantidadeAutorizada < 0 {
			return apperr.Validation("Quantidade autorizada não pode ser negativa")
		}
		if *m.QuantidadeAutorizada > 1000 {
			return apperr.Validation("Quantidade autorizada máxima é 1000")
		}
	}

	// quantidade_utilizada
	if m.QuantidadeUtilizada != nil {
		if *m.QuantidadeUtilizada < 0 {
			return apperr.Validation("Quantidade utilizada não pode ser negativa")
		}
		if *m.QuantidadeUtilizada > 1000 {
			return apperr.Validation("Quantidade utilizada máxima é 1000")
		}
	}

	// valor_unitario
	if m.ValorUnitario < 0 {
		return apperr.Validation("Valor unitário não pode ser negativo")
	}
	if m.ValorUnitario > 99999.99 {
		return apperr.Validation("Valor unitário excede limite máximo (R$ 99.999,99)")
	}

	// status
	status := strings.ToLower(strings.TrimSpace(m.Status))
	if !contains(statuses, status) {
		return apperr.Validation("Status deve ser um de: " + strings.Join(statuses, ", "))
	}
	m.Status = status

	// descricao
	descricao := strings.TrimSpace(m.Descricao)
	if descricao == "" {
		return apperr.Validation("Descrição não pode ser vazia")
	}
	if utf8.RuneCountInString(descricao) < 5 {
		return apperr.Validation("Descrição deve ter no mínimo 5 caracteres")
	}
	m.Descricao = descricao

	// data_validade_lote
	if m.DataValidadeLote != nil {
		now := time.Now().UTC()
		if m.DataValidadeLote.Before(now) {
			return apperr.Validation("Material com lote vencido não pode ser utilizado")
		}
		if m.DataValidadeLote.After(now.AddDate(0, 0, 3650)) {
			return apperr.Validation("Data de validade muito distante (máximo 10 anos)")
		}
	}

	// cross-field rules
	if m.QuantidadeUtilizada != nil && m.QuantidadeAutorizada != nil &&
		*m.QuantidadeUtilizada > *m.QuantidadeAutorizada && m.Status != "glosado" {
		return apperr.Validationf("Quantidade utilizada (%d) excede autorizada (%d). Status deve ser 'glosado'.",
			*m.QuantidadeUtilizada, *m.QuantidadeAutorizada)
	}
	if m.QuantidadeAutorizada != nil && *m.QuantidadeAutorizada > 2*m.QuantidadeSolicitada {
		return apperr.Validationf("Quantidade autorizada (%d) muito maior que solicitada (%d)",
			*m.QuantidadeAutorizada, m.QuantidadeSolicitada)
	}
	if m.Status == "autorizado" && (m.QuantidadeAutorizada == nil || *m.QuantidadeAutorizada <= 0) {
		return apperr.Validation("Material com status 'autorizado' deve ter quantidade_autorizada > 0")
	}
	if m.Status == "utilizado" && (m.QuantidadeUtilizada == nil || *m.QuantidadeUtilizada <= 0) {
		return apperr.Validation("Material com status 'utilizado' deve ter quantidade_utilizada > 0")
	}
	if m.Status == "glosado" && (m.MotivoGlosa == nil || utf8.RuneCountInString(strings.TrimSpace(*m.MotivoGlosa)) < 10) {
		return apperr.Validation("Material glosado deve ter motivo da glosa (mínimo 10 caracteres)")
	}
	if m.ValorUnitario*float64(m.QuantidadeSolicitada) > 1000.00 &&
		(m.Justificativa == nil || utf8.RuneCountInString(strings.TrimSpace(*m.Justificativa)) < 20) {
		return apperr.Validation("Material de alto custo (>R$ 1.000) requer justificativa detalhada")
	}
	if m.Status == "utilizado" && m.Lote != nil && m.DataValidadeLote == nil {
		return apperr.Validation("Material utilizado com lote deve ter data de validade")
	}

	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
