package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so transport layers can pick a status code
// without matching on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStorage
	KindCache
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindCache:
		return "cache"
	default:
		return "unknown"
	}
}

// Error is the error type crossing domain and platform boundaries.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.kind.String()
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// Validation reports a broken domain rule. The message is returned to API
// clients as-is.
func Validation(msg string) error {
	return &Error{kind: KindValidation, msg: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing row by resource name and id.
func NotFound(resource string, id int64) error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf("%s with id %d not found", resource, id)}
}

func Conflictf(format string, args ...any) error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// Storage wraps a database failure under a short operation label.
func Storage(op string, err error) error {
	return &Error{kind: KindStorage, msg: fmt.Sprintf("storage: %s", op), err: err}
}

// CacheFailure wraps a cache failure. These are logged, never surfaced.
func CacheFailure(op string, err error) error {
	return &Error{kind: KindCache, msg: fmt.Sprintf("cache: %s", op), err: err}
}

// KindOf returns the Kind carried by err, unwrapping as needed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the response status its kind implies.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
