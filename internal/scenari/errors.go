package scenari

import (
	"errors"
	"math"
)

// ErrInputNonValido is the only failure a calculator can report.
var ErrInputNonValido = errors.New("input non valido")

// ValidationError carries the offending field and the message shown to the
// user. It matches ErrInputNonValido with errors.Is.
type ValidationError struct {
	Campo     string
	Messaggio string
}

func (e *ValidationError) Error() string { return e.Messaggio }

func (e *ValidationError) Unwrap() error { return ErrInputNonValido }

func nonValido(campo, messaggio string) error {
	return &ValidationError{Campo: campo, Messaggio: messaggio}
}

// positivo is false for zero, negatives and NaN.
func positivo(v float64) bool { return v > 0 }

// finiti is false when any value overflowed to Inf or became NaN.
func finiti(valori ...float64) bool {
	for _, v := range valori {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

const messaggioFuoriScala = "Gli importi inseriti sono troppo grandi per essere calcolati."
