package web

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/apperr"
)

// BindStrict decodes the request body into v, rejecting JSON objects that
// carry fields the target struct does not declare. Write payloads must be
// explicit: a misspelled column name fails loudly instead of being silently
// dropped.
func BindStrict(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("corpo da requisição não pode ser vazio")
		}
		if field, ok := unknownField(err); ok {
			return apperr.Validationf("campo desconhecido: %s", field)
		}
		return apperr.Validation("corpo da requisição inválido")
	}
	return nil
}

// unknownField extracts the offending field name from the json package's
// unknown-field error.
func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field `
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
