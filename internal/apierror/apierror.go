// Package apierror define el sobre de error que devuelve la API. Los handlers
// nunca serializan errores internos (GORM, drivers) hacia el cliente; todo
// pasa por estas estructuras.
package apierror

// APIError es la respuesta de todo 4xx/5xx.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa los errores de campo de una petición rechazada por
// el validador, indexados por el nombre JSON del campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
