package dto

// ErrorResponse cuerpo de error HTTP. Todas las fallas responden
// {"error": mensaje}; los errores internos nunca exponen detalles.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
