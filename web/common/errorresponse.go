package common

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Statut carries the anomaly's current status on a treatment conflict
	// so the client can reconcile its view.
	Statut string `json:"statut,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewConflictResponse(message, statut string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
		Statut:  statut,
	}
}
