package procedimento

import (
	"testing"
	"time"

	"github.com/tiss/tiss/internal/apperr"
)

func intPtr(n int) *int { return &n }

func int64Ptr(n int64) *int64 { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func validProcedimento() *Procedimento {
	return &Procedimento{
		GuiaID:        1,
		Codigo:        "10101012",
		TipoTabela:    "TUSS",
		Descricao:     "Consulta em consultório",
		Categoria:     "consulta",
		Quantidade:    1,
		ValorUnitario: 150.00,
	}
}

func TestValidate_Valid(t *testing.T) {
	p := validProcedimento()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Normalization(t *testing.T) {
	p := validProcedimento()
	p.Codigo = " 1010-10.12 "
	p.TipoTabela = " tuss "
	p.Categoria = " CONSULTA "
	p.Descricao = "  Consulta em consultório  "

	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Codigo != "1010-10.12" {
		t.Errorf("codigo not normalized: %q", p.Codigo)
	}
	if p.TipoTabela != "TUSS" {
		t.Errorf("tipo_tabela not normalized: %q", p.TipoTabela)
	}
	if p.Categoria != "consulta" {
		t.Errorf("categoria not normalized: %q", p.Categoria)
	}
	if p.Descricao != "Consulta em consultório" {
		t.Errorf("descricao not trimmed: %q", p.Descricao)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Procedimento)
		want   string
	}{
		{"codigo empty", func(p *Procedimento) { p.Codigo = " " }, "Código do procedimento não pode ser vazio"},
		{"codigo too short", func(p *Procedimento) { p.Codigo = "10101" }, "Código do procedimento deve ter no mínimo 6 caracteres"},
		{"codigo bad chars", func(p *Procedimento) { p.Codigo = "10101_12" }, "Código deve ser alfanumérico (A-Z, 0-9, ., -)"},
		{"tabela unknown", func(p *Procedimento) { p.TipoTabela = "ABC" }, "Tipo de tabela deve ser um de: TUSS, SIGTAP, SIMPRO, BRASINDICE, CBHPM"},
		{"categoria unknown", func(p *Procedimento) { p.Categoria = "outros" }, "Categoria deve ser uma de: consulta, exame, cirurgia, internacao, procedimento ambulatorial, terapia, diagnostico, urgencia"},
		{"quantidade zero", func(p *Procedimento) { p.Quantidade = 0 }, "Quantidade deve ser no mínimo 1"},
		{"quantidade too large", func(p *Procedimento) { p.Quantidade = 101 }, "Quantidade máxima é 100 (verificar se correto)"},
		{"valor negative", func(p *Procedimento) { p.ValorUnitario = -1 }, "Valor unitário não pode ser negativo"},
		{"valor zero", func(p *Procedimento) { p.ValorUnitario = 0 }, "Valor unitário deve ser maior que zero"},
		{"valor too large", func(p *Procedimento) { p.ValorUnitario = 1000000 }, "Valor unitário excede limite máximo"},
		{"data futura", func(p *Procedimento) {
			p.DataRealizacao = timePtr(time.Now().UTC().Add(24 * time.Hour))
			p.PrestadorExecutanteID = int64Ptr(1)
		}, "Data de realização não pode ser no futuro"},
		{"data too old", func(p *Procedimento) {
			p.DataRealizacao = timePtr(time.Now().UTC().AddDate(0, 0, -731))
			p.PrestadorExecutanteID = int64Ptr(1)
		}, "Data de realização não pode ser mais de 2 anos no passado"},
		{"descricao empty", func(p *Procedimento) { p.Descricao = "" }, "Descrição não pode ser vazia"},
		{"descricao too short", func(p *Procedimento) { p.Descricao = "Consulta" }, "Descrição deve ter no mínimo 10 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProcedimento()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("expected validation kind, got %v", apperr.KindOf(err))
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidate_RealizadoRequiresExecutante(t *testing.T) {
	p := validProcedimento()
	p.DataRealizacao = timePtr(time.Now().UTC().AddDate(0, 0, -1))

	err := p.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Procedimento realizado deve ter prestador executante" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	p.PrestadorExecutanteID = int64Ptr(7)
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CirurgiaMinimumValue(t *testing.T) {
	p := validProcedimento()
	p.Categoria = "cirurgia"
	p.ValorUnitario = 99.99

	err := p.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Cirurgia deve ter valor mínimo de R$ 100,00" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	p.ValorUnitario = 100.00
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SIGTAPGroupPrefix(t *testing.T) {
	p := validProcedimento()
	p.TipoTabela = "SIGTAP"
	p.Codigo = "0901010"

	err := p.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Código SIGTAP deve começar com grupo válido (01-04)" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	p.Codigo = "0301010"
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_QuantidadeDefaultApplied(t *testing.T) {
	in := CreateInput{
		GuiaID:        1,
		Codigo:        "10101012",
		TipoTabela:    "TUSS",
		Descricao:     "Consulta em consultório",
		Categoria:     "consulta",
		ValorUnitario: 150.00,
	}
	p := in.toModel()
	if p.Quantidade != 1 {
		t.Errorf("expected quantidade default 1, got %d", p.Quantidade)
	}
	in.Quantidade = intPtr(5)
	if got := in.toModel().Quantidade; got != 5 {
		t.Errorf("expected quantidade 5, got %d", got)
	}
}
