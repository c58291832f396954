package procedimento

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Procedimento maps to the procedimento table: one billable act performed
// under a guia, coded against a TISS pricing table.
type Procedimento struct {
	ID                    int64      `db:"id" json:"id" msgpack:"id"`
	GuiaID                int64      `db:"guia_id" json:"guia_id" msgpack:"guia_id"`
	Codigo                string     `db:"codigo" json:"codigo" msgpack:"codigo"`
	TipoTabela            string     `db:"tipo_tabela" json:"tipo_tabela" msgpack:"tipo_tabela"`
	Descricao             string     `db:"descricao" json:"descricao" msgpack:"descricao"`
	Categoria             string     `db:"categoria" json:"categoria" msgpack:"categoria"`
	DataRealizacao        *time.Time `db:"data_realizacao" json:"data_realizacao,omitempty" msgpack:"data_realizacao"`
	PrestadorExecutanteID *int64     `db:"prestador_executante_id" json:"prestador_executante_id,omitempty" msgpack:"prestador_executante_id"`
	Quantidade            int        `db:"quantidade" json:"quantidade" msgpack:"quantidade"`
	ValorUnitario         float64    `db:"valor_unitario" json:"valor_unitario" msgpack:"valor_unitario"`
	Observacoes           *string    `db:"observacoes" json:"observacoes,omitempty" msgpack:"observacoes"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var codigoRe = regexp.MustCompile(`^[A-Z0-9.\-]+$`)

var (
	tiposTabela = []string{"TUSS", "SIGTAP", "SIMPRO", "BRASINDICE", "CBHPM"}
	categorias  = []string{
		"consulta", "exame", "cirurgia", "internacao",
		"procedimento ambulatorial", "terapia", "diagnostico", "urgencia",
	}
	gruposSIGTAP = []string{"01", "02", "03", "04"}
)

// Validate normalizes the record in place and returns the first rule
// violation. Per-field rules run first, cross-field rules after.
func (p *Procedimento) Validate() error {
	// codigo
	codigo := strings.ToUpper(strings.TrimSpace(p.Codigo))
	if codigo == "" {
		return apperr.Validation("Código do procedimento não pode ser vazio")
	}
	if utf8.RuneCountInString(codigo) < 6 {
		return apperr.Validation("Código do procedimento deve ter no mínimo 6 caracteres")
	}
	if !codigoRe.MatchString(codigo) {
		return apperr.Validation("Código deve ser alfanumérico (A-Z, 0-9, ., -)")
	}
	p.Codigo = codigo

	// tipo_tabela
	tabela := strings.ToUpper(strings.TrimSpace(p.TipoTabela))
	if !contains(tiposTabela, tabela) {
		return apperr.Validation("Tipo de tabela deve ser um de: " + strings.Join(tiposTabela, ", "))
	}
	p.TipoTabela = tabela

	// categoria
	categoria := strings.ToLower(strings.TrimSpace(p.Categoria))
	if !contains(categorias, categoria) {
		return apperr.Validation("Categoria deve ser uma de: " + strings.Join(categorias, ", "))
	}
	p.Categoria = categoria

	// quantidade
	if p.Quantidade < 1 {
		return apperr.Validation("Quantidade deve ser no mínimo 1")
	}
	if p.Quantidade > 100 {
		return apperr.Validation("Quantidade máxima é 100 (verificar se correto)")
	}

	// valor_unitario
	if p.ValorUnitario < 0 {
		return apperr.Validation("Valor unitário não pode ser negativo")
	}
	if p.ValorUnitario == 0 {
		return apperr.Validation("Valor unitário deve ser maior que zero")
	}
	if p.ValorUnitario > 999999.99 {
		return apperr.Validation("Valor unitário excede limite máximo")
	}

	// data_realizacao
	if p.DataRealizacao != nil {
		now := time.Now().UTC()
		if p.DataRealizacao.After(now) {
			return apperr.Validation("Data de realização não pode ser no futuro")
		}
		if p.DataRealizacao.Before(now.AddDate(0, 0, -730)) {
			return apperr.Validation("Data de realização não pode ser mais de 2 anos no passado")
		}
	}

	// descricao
	descricao := strings.TrimSpace(p.Descricao)
	if descricao == "" {
		return apperr.Validation("Descrição não pode ser vazia")
	}
	if utf8.RuneCountInString(descricao) < 10 {
		return apperr.Validation("Descrição deve ter no mínimo 10 caracteres")
	}
	p.Descricao = descricao

	// cross-field rules
	if p.DataRealizacao != nil && p.PrestadorExecutanteID == nil {
		return apperr.Validation("Procedimento realizado deve ter prestador executante")
	}
	if p.Categoria == "cirurgia" && p.ValorUnitario < 100.00 {
		return apperr.Validation("Cirurgia deve ter valor mínimo de R$ 100,00")
	}
	if p.TipoTabela == "SIGTAP" && !contains(gruposSIGTAP, p.Codigo[:2]) {
		return apperr.Validation("Código SIGTAP deve começar com grupo válido (01-04)")
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
