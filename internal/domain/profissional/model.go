package profissional

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Profissional maps to the profissional_solicitante table: the practitioner
// who requested the guia, identified by council registration.
type Profissional struct {
	ID                          int64     `db:"id" json:"id" msgpack:"id"`
	Nome                        string    `db:"nome" json:"nome" msgpack:"nome"`
	Conselho                    string    `db:"conselho" json:"conselho" msgpack:"conselho"`
	ConselhoEspecialidade       string    `db:"conselho_especialidade" json:"conselho_especialidade" msgpack:"conselho_especialidade"`
	UF                          string    `db:"uf" json:"uf" msgpack:"uf"`
	NumeroConselho              string    `db:"numero_conselho" json:"numero_conselho" msgpack:"numero_conselho"`
	NumeroConselhoEspecialidade string    `db:"numero_conselho_especialidade" json:"numero_conselho_especialidade" msgpack:"numero_conselho_especialidade"`
	CreatedAt                   time.Time `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var (
	nomeRe           = regexp.MustCompile(`^[A-Za-zÀ-ÿ\s'\-.]+$`)
	numeroConselhoRe = regexp.MustCompile(`^[A-Z0-9\-/]+$`)
)

var conselhos = []string{"CRM", "CRO", "COREN", "CRF", "CREFITO", "CRP", "CRN", "CRFA", "CRBM", "COFFITO"}

var ufs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// Validate normalizes the record in place and returns the first rule
// violation.
func (p *Profissional) Validate() error {
	// nome
	nome := strings.TrimSpace(p.Nome)
	if nome == "" {
		return apperr.Validation("Nome não pode ser vazio")
	}
	if utf8.RuneCountInString(nome) < 3 {
		return apperr.Validation("Nome deve ter no mínimo 3 caracteres")
	}
	if !nomeRe.MatchString(nome) {
		return apperr.Validation("Nome contém caracteres inválidos")
	}
	p.Nome = titleCase(nome)

	// conselho
	conselho := strings.ToUpper(strings.TrimSpace(p.Conselho))
	if !contains(conselhos, conselho) {
		return apperr.Validation("Conselho deve ser um de: " + strings.Join(conselhos, ", "))
	}
	p.Conselho = conselho

	// uf
	uf := strings.ToUpper(strings.TrimSpace(p.UF))
	if !ufs[uf] {
		return apperr.Validation("UF inválida. Use sigla de estado brasileiro (ex: SP, RJ)")
	}
	p.UF = uf

	// numero_conselho
	numero := strings.ToUpper(strings.TrimSpace(p.NumeroConselho))
	if numero == "" {
		return apperr.Validation("Número do conselho não pode ser vazio")
	}
	if utf8.RuneCountInString(numero) < 3 {
		return apperr.Validation("Número do conselho deve ter no mínimo 3 caracteres")
	}
	if !numeroConselhoRe.MatchString(numero) {
		return apperr.Validation("Número do conselho deve ser alfanumérico")
	}
	p.NumeroConselho = numero

	// numero_conselho_especialidade
	numeroEsp := strings.ToUpper(strings.TrimSpace(p.NumeroConselhoEspecialidade))
	if numeroEsp == "" {
		return apperr.Validation("Número do conselho de especialidade não pode ser vazio")
	}
	if utf8.RuneCountInString(numeroEsp) < 3 {
		return apperr.Validation("Número deve ter no mínimo 3 caracteres")
	}
	if !numeroConselhoRe.MatchString(numeroEsp) {
		return apperr.Validation("Número deve ser alfanumérico")
	}
	p.NumeroConselhoEspecialidade = numeroEsp

	// conselho_especialidade
	especialidade := strings.TrimSpace(p.ConselhoEspecialidade)
	if especialidade == "" {
		return apperr.Validation("Especialidade não pode ser vazia")
	}
	especialidade = titleCase(especialidade)
	if utf8.RuneCountInString(especialidade) < 3 {
		return apperr.Validation("Especialidade deve ter no mínimo 3 caracteres")
	}
	p.ConselhoEspecialidade = especialidade

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

// titleCase uppercases each letter that follows a non-letter and lowers the
// rest, so "JOÃO d'ávila" becomes "João D'Ávila".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
