package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva el motivo por campo en los errores de validación.
type ErrorResponse struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Details    map[string]string `json:"details,omitempty"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
