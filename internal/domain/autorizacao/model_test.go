package autorizacao

import (
	"strings"
	"testing"
	"time"

	"github.com/tiss/tiss/internal/apperr"
)

func int64Ptr(n int64) *int64 { return &n }

func strPtr(s string) *string { return &s }

func validAutorizacao() *Autorizacao {
	now := time.Now().UTC()
	return &Autorizacao{
		NumeroAutorizacao: "AUT-2024-001",
		DataAutorizacao:   now.AddDate(0, 0, -1),
		DataValidade:      now.AddDate(0, 0, 30),
		ProcedimentoID:    int64Ptr(1),
		TipoAutorizacao:   "procedimento",
		Status:            "pendente",
	}
}

func TestValidate_Valid(t *testing.T) {
	a := validAutorizacao()
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		mutate func(*Autorizacao)
		want   string
	}{
		{"numero empty", func(a *Autorizacao) { a.NumeroAutorizacao = "" }, "Número da autorização não pode ser vazio"},
		{"numero too short", func(a *Autorizacao) { a.NumeroAutorizacao = "A123" }, "Número da autorização deve ter no mínimo 5 caracteres"},
		{"numero bad chars", func(a *Autorizacao) { a.NumeroAutorizacao = "AUT 2024" }, "Número deve ser alfanumérico (A-Z, 0-9, -)"},
		{"tipo unknown", func(a *Autorizacao) { a.TipoAutorizacao = "exame" }, "Tipo de autorização deve ser um de: procedimento, opme, material"},
		{"status unknown", func(a *Autorizacao) { a.Status = "ok" }, "Status deve ser um de: pendente, aprovada, negada, expirada, cancelada"},
		{"data autorizacao futura", func(a *Autorizacao) { a.DataAutorizacao = now.Add(24 * time.Hour) }, "Data de autorização não pode ser no futuro"},
		{"data autorizacao too old", func(a *Autorizacao) { a.DataAutorizacao = now.AddDate(0, 0, -181) }, "Data de autorização não pode ser mais de 6 meses no passado"},
		{"validade too far", func(a *Autorizacao) { a.DataValidade = now.AddDate(0, 0, 366) }, "Validade máxima é 1 ano"},
		{"motivo negacao too short", func(a *Autorizacao) { a.MotivoNegacao = strPtr("curto") }, "Motivo de negação deve ter no mínimo 10 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAutorizacao()
			tt.mutate(a)
			err := a.Validate()
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

func TestValidate_ReferenciaObrigatoria(t *testing.T) {
	a := validAutorizacao()
	a.ProcedimentoID = nil

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização deve referenciar um procedimento OU um material" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_ReferenciaDupla(t *testing.T) {
	a := validAutorizacao()
	a.MaterialID = int64Ptr(2)

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização não pode referenciar procedimento E material simultaneamente" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_TipoCoerenteComReferencia(t *testing.T) {
	a := validAutorizacao()
	a.TipoAutorizacao = "material"

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Tipo deve ser 'procedimento' quando procedimento_id está preenchido" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a = validAutorizacao()
	a.ProcedimentoID = nil
	a.MaterialID = int64Ptr(2)
	a.TipoAutorizacao = "procedimento"

	err = a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Tipo deve ser 'opme' ou 'material' quando material_id está preenchido" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a.TipoAutorizacao = "material"
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ValidadeAposAutorizacao(t *testing.T) {
	a := validAutorizacao()
	a.DataValidade = a.DataAutorizacao.Add(-time.Hour)

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Data de validade deve ser após data de autorização" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_ValidadeMinimaUmDia(t *testing.T) {
	a := validAutorizacao()
	a.DataValidade = a.DataAutorizacao.Add(12 * time.Hour)

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização deve ter validade mínima de 1 dia" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_AprovadaExigeExecutante(t *testing.T) {
	a := validAutorizacao()
	a.Status = "aprovada"

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização aprovada deve ter prestador executante" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a.PrestadorExecutanteID = int64Ptr(3)
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NegadaExigeMotivo(t *testing.T) {
	a := validAutorizacao()
	a.Status = "negada"

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização negada deve ter motivo detalhado (mínimo 10 caracteres)" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a.MotivoNegacao = strPtr("Procedimento fora da cobertura contratual")
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_OPMEExigeObservacoes(t *testing.T) {
	a := validAutorizacao()
	a.ProcedimentoID = nil
	a.MaterialID = int64Ptr(2)
	a.TipoAutorizacao = "opme"

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização de OPME requer justificativa detalhada" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a.Observacoes = strPtr(strings.Repeat("justificativa ", 3))
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AprovadaVencida(t *testing.T) {
	now := time.Now().UTC()
	a := validAutorizacao()
	a.Status = "aprovada"
	a.PrestadorExecutanteID = int64Ptr(3)
	a.DataAutorizacao = now.AddDate(0, 0, -30)
	a.DataValidade = now.AddDate(0, 0, -2)

	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Autorização expirada não pode ter status 'aprovada'. Use status 'expirada'." {
		t.Errorf("unexpected message: %q", err.Error())
	}

	a.Status = "expirada"
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToModel_Defaults(t *testing.T) {
	in := CreateInput{
		NumeroAutorizacao: "AUT-2024-001",
		DataValidade:      time.Now().UTC().AddDate(0, 0, 30),
		ProcedimentoID:    int64Ptr(1),
		TipoAutorizacao:   "procedimento",
	}
	a := in.toModel()
	if a.Status != "pendente" {
		t.Errorf("expected status default pendente, got %q", a.Status)
	}
	if a.DataAutorizacao.IsZero() {
		t.Error("expected data_autorizacao defaulted to now")
	}
}
