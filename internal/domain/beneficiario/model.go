package beneficiario

import (
	"regexp"
	"strings"
	"time"

	"github.com/tiss/tiss/internal/apperr"
)

// Beneficiario maps to the beneficiario table: the insured person a guia is
// issued for. Identificador accepts a CPF, a CNS or a carteirinha number.
type Beneficiario struct {
	ID             int64      `db:"id" json:"id" msgpack:"id"`
	Identificador  string     `db:"identificador" json:"identificador" msgpack:"identificador"`
	Sexo           *string    `db:"sexo" json:"sexo,omitempty" msgpack:"sexo"`
	DataNascimento *time.Time `db:"data_nascimento" json:"data_nascimento,omitempty" msgpack:"data_nascimento"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

var carteirinhaRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

var validSexo = map[string]bool{"M": true, "F": true, "I": true}

// Validate normalizes the record in place and returns the first rule
// violation. Field rules run in declaration order.
func (b *Beneficiario) Validate() error {
	// identificador
	ident := strings.TrimSpace(b.Identificador)
	if ident == "" {
		return apperr.Validation("Identificador não pode ser vazio")
	}
	switch digits := digitsOnly(ident); len(digits) {
	case 11: // CPF
		if allSameDigit(digits) {
			return apperr.Validation("CPF inválido: todos os dígitos são iguais")
		}
	case 15: // CNS
	default: // carteirinha
		if len(ident) < 5 || !carteirinhaRe.MatchString(ident) {
			return apperr.Validation("Identificador inválido. Use CPF (11 dígitos), CNS (15 dígitos) ou carteirinha (mínimo 5 caracteres)")
		}
	}
	b.Identificador = ident

	// sexo
	if b.Sexo != nil {
		sexo := strings.ToUpper(strings.TrimSpace(*b.Sexo))
		if !validSexo[sexo] {
			return apperr.Validation("Sexo deve ser 'M' (masculino), 'F' (feminino) ou 'I' (indeterminado)")
		}
		b.Sexo = &sexo
	}

	// data_nascimento
	if b.DataNascimento != nil {
		now := time.Now().UTC()
		if b.DataNascimento.After(now) {
			return apperr.Validation("Data de nascimento não pode ser no futuro")
		}
		years := now.Sub(*b.DataNascimento).Hours() / 24 / 365.25
		if years > 150 {
			return apperr.Validation("Data de nascimento inválida: idade máxima 150 anos")
		}
	}

	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
