package anomalie

import (
	"errors"
	"fmt"
)

// ErrAnomalieIntrouvable is returned when a referenced anomaly id does not
// resolve to a row.
var ErrAnomalieIntrouvable = errors.New("anomalie introuvable")

// EtatInvalideError rejects a treatment on an already-resolved anomaly. The
// current status travels with the error so the caller can refresh its UI
// instead of retrying blindly.
type EtatInvalideError struct {
	Statut StatutAnomalie
}

func (e *EtatInvalideError) Error() string {
	return fmt.Sprintf("anomalie deja traitee (statut %s)", e.Statut)
}

// ValidationError is a malformed-request error: nothing was persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
