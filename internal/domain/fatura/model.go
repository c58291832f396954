package fatura

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Fatura maps to the fatura table: the prestador's invoice covering the guias
// executed over one billing period.
type Fatura struct {
	ID             int64      `db:"id" json:"id" msgpack:"id"`
	NumeroFatura   string     `db:"numero_fatura" json:"numero_fatura" msgpack:"numero_fatura"`
	DataEmissao    time.Time  `db:"data_emissao" json:"data_emissao" msgpack:"data_emissao"`
	DataVencimento *time.Time `db:"data_vencimento" json:"data_vencimento,omitempty" msgpack:"data_vencimento"`
	PeriodoInicio  time.Time  `db:"periodo_inicio" json:"periodo_inicio" msgpack:"periodo_inicio"`
	PeriodoFim     time.Time  `db:"periodo_fim" json:"periodo_fim" msgpack:"periodo_fim"`
	PrestadorID    int64      `db:"prestador_id" json:"prestador_id" msgpack:"prestador_id"`
	Status         string     `db:"status" json:"status" msgpack:"status"`
	ValorTotal     float64    `db:"valor_total" json:"valor_total" msgpack:"valor_total"`
	Observacoes    *string    `db:"observacoes" json:"observacoes,omitempty" msgpack:"observacoes"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var numeroRe = regexp.MustCompile(`^[A-Z0-9\-/]+$`)

var statuses = []string{
	"pendente", "em_analise", "aprovada", "aprovada_parcial",
	"paga", "paga_parcial", "rejeitada", "cancelada",
}

var statusesComValor = []string{"paga", "paga_parcial", "aprovada"}

// Validate normalizes the record in place and returns the first rule
// violation. Per-field rules run first, cross-field rules after.
func (f *Fatura) Validate() error {
	now := time.Now().UTC()

	// numero_fatura
	numero := strings.ToUpper(strings.TrimSpace(f.NumeroFatura))
	if numero == "" {
		return apperr.Validation("Número da fatura não pode ser vazio")
	}
	if utf8.RuneCountInString(numero) < 5 {
		return apperr.Validation("Número da fatura deve ter no mínimo 5 caracteres")
	}
	if !numeroRe.MatchString(numero) {
		return apperr.Validation("Número da fatura deve ser alfanumérico (A-Z, 0-9, -, /)")
	}
	f.NumeroFatura = numero

	// status
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if !contains(statuses, status) {
		return apperr.Validation("Status deve ser um de: " + strings.Join(statuses, ", "))
	}
	f.Status = status

	// valor_total
	if f.ValorTotal < 0 {
		return apperr.Validation("Valor total não pode ser negativo")
	}
	if f.ValorTotal > 9999999.99 {
		return apperr.Validation("Valor total excede limite máximo (R$ 9.999.999,99)")
	}

	// data_emissao
	if f.DataEmissao.After(now) {
		return apperr.Validation("Data de emissão não pode ser no futuro")
	}
	if f.DataEmissao.Before(now.AddDate(0, 0, -365)) {
		return apperr.Validation("Data de emissão não pode ser mais de 1 ano no passado")
	}

	// data_vencimento: past values stay valid so overdue invoices can be stored.
	if f.DataVencimento != nil && f.DataVencimento.After(now.AddDate(0, 0, 365)) {
		return apperr.Validation("Data de vencimento não pode ser mais de 1 ano no futuro")
	}

	// cross-field rules
	if !f.PeriodoFim.After(f.PeriodoInicio) {
		return apperr.Validation("Período fim deve ser após período início")
	}
	if f.PeriodoFim.Sub(f.PeriodoInicio) > 90*24*time.Hour {
		return apperr.Validation("Período de faturamento não pode exceder 90 dias")
	}
	if f.DataVencimento != nil {
		if f.DataVencimento.Before(f.DataEmissao) {
			return apperr.Validation("Data de vencimento deve ser após data de emissão")
		}
		if f.DataVencimento.Sub(f.DataEmissao) < 5*24*time.Hour {
			return apperr.Validation("Prazo de vencimento deve ser no mínimo 5 dias após emissão")
		}
	}
	if f.DataEmissao.Before(f.PeriodoInicio) {
		return apperr.Validation("Data de emissão não pode ser antes do período faturado")
	}
	if f.DataEmissao.After(f.PeriodoFim.AddDate(0, 0, 30)) {
		return apperr.Validation("Data de emissão deve ser até 30 dias após fim do período")
	}
	if contains(statusesComValor, f.Status) && f.ValorTotal <= 0 {
		return apperr.Validationf("Fatura com status '%s' deve ter valor > 0", f.Status)
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
