package prestador

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tiss/tiss/internal/apperr"
)

// Prestador maps to the prestador table: the clinic, hospital or lab that
// executes procedures and issues faturas. CNPJ is validated against both
// check digits and stored in the canonical NN.NNN.NNN/NNNN-NN form.
type Prestador struct {
	ID        int64     `db:"id" json:"id" msgpack:"id"`
	Nome      string    `db:"nome" json:"nome" msgpack:"nome"`
	CNPJ      string    `db:"cnpj" json:"cnpj" msgpack:"cnpj"`
	Endereco  *string   `db:"endereco" json:"endereco,omitempty" msgpack:"endereco"`
	CreatedAt time.Time `db:"created_at" json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at" msgpack:"updated_at"`
}

// Validate normalizes the record in place and returns the first rule
// violation.
func (p *Prestador) Validate() error {
	// nome
	nome := strings.TrimSpace(p.Nome)
	if nome == "" {
		return apperr.Validation("Nome do prestador não pode ser vazio")
	}
	if utf8.RuneCountInString(nome) < 3 {
		return apperr.Validation("Nome deve ter no mínimo 3 caracteres")
	}
	p.Nome = nome

	// cnpj
	if strings.TrimSpace(p.CNPJ) == "" {
		return apperr.Validation("CNPJ não pode ser vazio")
	}
	digits := digitsOnly(p.CNPJ)
	if len(digits) != 14 {
		return apperr.Validation("CNPJ deve ter 14 dígitos")
	}
	if allSameDigit(digits) {
		return apperr.Validation("CNPJ inválido: todos os dígitos são iguais")
	}
	if cnpjCheckDigit(digits[:12], cnpjWeights1) != int(digits[12]-'0') {
		return apperr.Validation("CNPJ inválido: primeiro dígito verificador incorreto")
	}
	if cnpjCheckDigit(digits[:13], cnpjWeights2) != int(digits[13]-'0') {
		return apperr.Validation("CNPJ inválido: segundo dígito verificador incorreto")
	}
	p.CNPJ = fmt.Sprintf("%s.%s.%s/%s-%s",
		digits[0:2], digits[2:5], digits[5:8], digits[8:12], digits[12:14])

	// endereco
	if p.Endereco != nil {
		endereco := strings.TrimSpace(*p.Endereco)
		if endereco != "" && utf8.RuneCountInString(endereco) < 10 {
			return apperr.Validation("Endereço deve ter no mínimo 10 caracteres se preenchido")
		}
		p.Endereco = &endereco
	}

	return nil
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func cnpjCheckDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
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
