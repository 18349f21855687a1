// Package apierror provides the error taxonomy and the response envelope used
// by every endpoint. Internal details (DB errors, stack traces) never reach the
// client: only the Message of an *Error is rendered.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error into the HTTP status family it maps to.
type Kind int

const (
	KindInterno Kind = iota
	KindValidacion
	KindAuth
	KindProhibido
	KindNoEncontrado
	KindConflicto
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidacion:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindProhibido:
		return http.StatusForbidden
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindConflicto:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, client-safe error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, logged but never rendered
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validacion(msg string) *Error   { return &Error{Kind: KindValidacion, Message: msg} }
func Auth(msg string) *Error         { return &Error{Kind: KindAuth, Message: msg} }
func Prohibido(msg string) *Error    { return &Error{Kind: KindProhibido, Message: msg} }
func NoEncontrado(msg string) *Error { return &Error{Kind: KindNoEncontrado, Message: msg} }
func Conflicto(msg string) *Error    { return &Error{Kind: KindConflicto, Message: msg} }

// Interno wraps an unexpected failure.
func Interno(msg string, err error) *Error {
	return &Error{Kind: KindInterno, Message: msg, Err: err}
}

// As extracts an *Error from err. Unclassified errors come back as KindInterno.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Interno("Error interno del servidor", err)
}

// ── Envelope ──────────────────────────────────────────────────────────────────

const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
)

// Response is the uniform body of every JSON response.
type Response struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Success(msg string, data any) Response {
	return Response{Type: TypeSuccess, Message: msg, Data: data}
}

func Warning(msg string, data any) Response {
	return Response{Type: TypeWarning, Message: msg, Data: data}
}

func New(msg string) Response {
	return Response{Type: TypeError, Message: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) Response {
	return Response{Type: TypeError, Message: "Error de validacion", Fields: fields}
}
