package fatura

import (
	"time"

	"github.com/tiss/tiss/internal/apperr"
)

// FaturaGuia maps to the fatura_guia link table. Each guia can enter at most
// one fatura, enforced by the unique index on guia_id.
type FaturaGuia struct {
	ID           int64     `db:"id" json:"id" msgpack:"id"`
	FaturaID     int64     `db:"fatura_id" json:"fatura_id" msgpack:"fatura_id"`
	GuiaID       int64     `db:"guia_id" json:"guia_id" msgpack:"guia_id"`
	DataInclusao time.Time `db:"data_inclusao" json:"data_inclusao" msgpack:"data_inclusao"`
}

// Validate returns the first rule violation.
func (fg *FaturaGuia) Validate() error {
	if fg.FaturaID <= 0 {
		return apperr.Validation("fatura_id deve ser um ID válido (> 0)")
	}
	if fg.GuiaID <= 0 {
		return apperr.Validation("guia_id deve ser um ID válido (> 0)")
	}
	now := time.Now().UTC()
	if fg.DataInclusao.After(now) {
		return apperr.Validation("Data de inclusão não pode ser no futuro")
	}
	if fg.DataInclusao.Before(now.AddDate(0, 0, -730)) {
		return apperr.Validation("Data de inclusão não pode ser mais de 2 anos no passado")
	}
	return nil
}
