package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable value")
	ErrInternalServerError = errors.New("internal server error")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)
