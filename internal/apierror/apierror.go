// Package apierror define los sobres de error que la API devuelve al cliente.
// Todo 4xx/5xx pasa por aquí: nunca se filtran errores de GORM, stack traces
// ni detalles de infraestructura.
package apierror

// APIError es el sobre estándar de un error simple.
type APIError struct {
	Detail string `json:"detail"`
}

// Error implementa error para poder encadenarlo en c.Error().
func (e *APIError) Error() string { return e.Detail }

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa los errores de campo de una request rechazada,
// indexados por nombre de campo con el tag de validación que falló.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
