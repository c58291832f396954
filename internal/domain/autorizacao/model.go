package autorizacao

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Autorizacao maps to the autorizacao table: the operadora's answer to a
// coverage request. It references either a procedimento or a material,
// never both.
type Autorizacao struct {
	ID                     int64      `db:"id" json:"id" msgpack:"id"`
	NumeroAutorizacao      string     `db:"numero_autorizacao" json:"numero_autorizacao" msgpack:"numero_autorizacao"`
	DataAutorizacao        time.Time  `db:"data_autorizacao" json:"data_autorizacao" msgpack:"data_autorizacao"`
	DataValidade           time.Time  `db:"data_validade" json:"data_validade" msgpack:"data_validade"`
	ProcedimentoID         *int64     `db:"procedimento_id" json:"procedimento_id,omitempty" msgpack:"procedimento_id"`
	MaterialID             *int64     `db:"material_id" json:"material_id,omitempty" msgpack:"material_id"`
	TipoAutorizacao        string     `db:"tipo_autorizacao" json:"tipo_autorizacao" msgpack:"tipo_autorizacao"`
	PrestadorExecutanteID  *int64     `db:"prestador_executante_id" json:"prestador_executante_id,omitempty" msgpack:"prestador_executante_id"`
	AprovadorIdentificador *string    `db:"aprovador_identificador" json:"aprovador_identificador,omitempty" msgpack:"aprovador_identificador"`
	Status                 string     `db:"status" json:"status" msgpack:"status"`
	MotivoNegacao          *string    `db:"motivo_negacao" json:"motivo_negacao,omitempty" msgpack:"motivo_negacao"`
	Observacoes            *string    `db:"observacoes" json:"observacoes,omitempty" msgpack:"observacoes"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var numeroRe = regexp.MustCompile(`^[A-Z0-9-]+$`)

var (
	tipos    = []string{"procedimento", "opme", "material"}
	statuses = []string{"pendente", "aprovada", "negada", "expirada", "cancelada"}
)

// Validate normalizes the record in place and returns the first rule
// violation. Per-field rules run first, cross-field rules after.
func (a *Autorizacao) Validate() error {
	now := time.Now().UTC()

	// numero_autorizacao
	numero := strings.ToUpper(strings.TrimSpace(a.NumeroAutorizacao))
	if numero == "" {
		return apperr.Validation("Número da autorização não pode ser vazio")
	}
	if utf8.RuneCountInString(numero) < 5 {
		return apperr.Validation("Número da autorização deve ter no mínimo 5 caracteres")
	}
	if !numeroRe.MatchString(numero) {
		return apperr.Validation("Número deve ser alfanumérico (A-Z, 0-9, -)")
	}
	a.NumeroAutorizacao = numero

	// tipo_autorizacao
	tipo := strings.ToLower(strings.TrimSpace(a.TipoAutorizacao))
	if !contains(tipos, tipo) {
		return apperr.Validation("Tipo de autorização deve ser um de: procedimento, opme, material")
	}
	a.TipoAutorizacao = tipo

	// status
	status := strings.ToLower(strings.TrimSpace(a.Status))
	if !contains(statuses, status) {
		return apperr.Validation("Status deve ser um de: " + strings.Join(statuses, ", "))
	}
	a.Status = status

	// data_autorizacao
	if a.DataAutorizacao.After(now) {
		return apperr.Validation("Data de autorização não pode ser no futuro")
	}
	if a.DataAutorizacao.Before(now.AddDate(0, 0, -180)) {
		return apperr.Validation("Data de autorização não pode ser mais de 6 meses no passado")
	}

	// data_validade: past values stay valid so expired history can be stored.
	if a.DataValidade.After(now.AddDate(0, 0, 365)) {
		return apperr.Validation("Validade máxima é 1 ano")
	}

	// motivo_negacao
	if a.MotivoNegacao != nil {
		motivo := strings.TrimSpace(*a.MotivoNegacao)
		if utf8.RuneCountInString(motivo) < 10 {
			return apperr.Validation("Motivo de negação deve ter no mínimo 10 caracteres")
		}
		a.MotivoNegacao = &motivo
	}

	// cross-field rules
	if a.ProcedimentoID == nil && a.MaterialID == nil {
		return apperr.Validation("Autorização deve referenciar um procedimento OU um material")
	}
	if a.ProcedimentoID != nil && a.MaterialID != nil {
		return apperr.Validation("Autorização não pode referenciar procedimento E material simultaneamente")
	}
	if a.ProcedimentoID != nil && a.TipoAutorizacao != "procedimento" {
		return apperr.Validation("Tipo deve ser 'procedimento' quando procedimento_id está preenchido")
	}
	if a.MaterialID != nil && a.TipoAutorizacao != "opme" && a.TipoAutorizacao != "material" {
		return apperr.Validation("Tipo deve ser 'opme' ou 'material' quando material_id está preenchido")
	}
	if !a.DataValidade.After(a.DataAutorizacao) {
		return apperr.Validation("Data de validade deve ser após data de autorização")
	}
	if a.DataValidade.Sub(a.DataAutorizacao) < 24*time.Hour {
		return apperr.Validation("Autorização deve ter validade mínima de 1 dia")
	}
	if a.Status == "aprovada" && a.PrestadorExecutanteID == nil {
		return apperr.Validation("Autorização aprovada deve ter prestador executante")
	}
	if a.Status == "negada" && (a.MotivoNegacao == nil || utf8.RuneCountInString(strings.TrimSpace(*a.MotivoNegacao)) < 10) {
		return apperr.Validation("Autorização negada deve ter motivo detalhado (mínimo 10 caracteres)")
	}
	if a.TipoAutorizacao == "opme" && (a.Observacoes == nil || utf8.RuneCountInString(strings.TrimSpace(*a.Observacoes)) < 20) {
		return apperr.Validation("Autorização de OPME requer justificativa detalhada")
	}
	if a.Status == "aprovada" && a.DataValidade.Before(now) {
		return apperr.Validation("Autorização expirada não pode ter status 'aprovada'. Use status 'expirada'.")
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
