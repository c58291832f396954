package guia

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Guia maps to the guia table: the TISS claim form tying a beneficiário, the
// requesting professional and the billed procedures together.
type Guia struct {
	ID               int64      `db:"id" json:"id" msgpack:"id"`
	NumeroGuia       string     `db:"numero_guia" json:"numero_guia" msgpack:"numero_guia"`
	DataSolicitacao  time.Time  `db:"data_solicitacao" json:"data_solicitacao" msgpack:"data_solicitacao"`
	IndicacaoClinica *string    `db:"indicacao_clinica" json:"indicacao_clinica,omitempty" msgpack:"indicacao_clinica"`
	TipoAtendimento  string     `db:"tipo_atendimento" json:"tipo_atendimento" msgpack:"tipo_atendimento"`
	BeneficiarioID   int64      `db:"beneficiario_id" json:"beneficiario_id" msgpack:"beneficiario_id"`
	SolicitanteID    *int64     `db:"solicitante_id" json:"solicitante_id,omitempty" msgpack:"solicitante_id"`
	Status           string     `db:"status" json:"status" msgpack:"status"`
	ValorTotal       float64    `db:"valor_total" json:"valor_total" msgpack:"valor_total"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var numeroRe = regexp.MustCompile(`^[A-Z0-9-]+$`)

var (
	tiposAtendimento = []string{"eletivo", "urgencia", "emergencia"}
	statuses         = []string{"solicitada", "autorizada", "realizada", "faturada", "paga", "cancelada", "negada"}
	// Statuses past "solicitada" presuppose a professional already asked for
	// the care.
	statusesComSolicitante = []string{"autorizada", "realizada", "faturada", "paga"}
)

// Validate normalizes the record in place and returns the first rule
// violation. Per-field rules run first, cross-field rules after.
func (g *Guia) Validate() error {
	// numero_guia
	numero := strings.ToUpper(strings.TrimSpace(g.NumeroGuia))
	if numero == "" {
		return apperr.Validation("Número da guia não pode ser vazio")
	}
	if utf8.RuneCountInString(numero) < 5 {
		return apperr.Validation("Número da guia deve ter no mínimo 5 caracteres")
	}
	if !numeroRe.MatchString(numero) {
		return apperr.Validation("Número da guia deve ser alfanumérico (A-Z, 0-9, -)")
	}
	g.NumeroGuia = numero

	// tipo_atendimento
	tipo := strings.ToLower(strings.TrimSpace(g.TipoAtendimento))
	if !contains(tiposAtendimento, tipo) {
		return apperr.Validation("Tipo de atendimento deve ser um de: eletivo, urgencia, emergencia")
	}
	g.TipoAtendimento = tipo

	// status
	status := strings.ToLower(strings.TrimSpace(g.Status))
	if !contains(statuses, status) {
		return apperr.Validation("Status deve ser um de: " + strings.Join(statuses, ", "))
	}
	g.Status = status

	// valor_total
	if g.ValorTotal < 0 {
		return apperr.Validation("Valor total não pode ser negativo")
	}
	if g.ValorTotal > 999999.99 {
		return apperr.Validation("Valor total excede limite máximo (R$ 999.999,99)")
	}

	// indicacao_clinica
	if g.IndicacaoClinica != nil {
		indicacao := strings.TrimSpace(*g.IndicacaoClinica)
		if utf8.RuneCountInString(indicacao) < 10 {
			return apperr.Validation("Indicação clínica deve ter no mínimo 10 caracteres")
		}
		g.IndicacaoClinica = &indicacao
	}

	// data_solicitacao
	now := time.Now().UTC()
	if g.DataSolicitacao.After(now.AddDate(0, 0, 7)) {
		return apperr.Validation("Data de solicitação não pode ser mais de 7 dias no futuro")
	}
	if g.DataSolicitacao.Before(now.AddDate(0, 0, -365)) {
		return apperr.Validation("Data de solicitação não pode ser mais de 1 ano no passado")
	}

	// cross-field rules
	if g.TipoAtendimento == "urgencia" || g.TipoAtendimento == "emergencia" {
		if g.IndicacaoClinica == nil || utf8.RuneCountInString(strings.TrimSpace(*g.IndicacaoClinica)) < 10 {
			return apperr.Validationf("Guia de %s requer indicação clínica detalhada", g.TipoAtendimento)
		}
	}
	if contains(statusesComSolicitante, g.Status) && g.SolicitanteID == nil {
		return apperr.Validationf("Guia com status '%s' requer profissional solicitante", g.Status)
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
