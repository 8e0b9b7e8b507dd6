package notice

import "fmt"

// Code classifies a recoverable condition raised during an analysis.
type Code string

const (
	// InvalidGeometry: tubing shoe at or below the perforation; the shoe was moved up.
	InvalidGeometry Code = "invalid_geometry"
	// MissingCasingCoverage: no casing spans shoe to perforation; a fallback casing was used.
	MissingCasingCoverage Code = "missing_casing_coverage"
	// NonConvergence: a segment solve hit the iteration cap; the last iterate was kept.
	NonConvergence Code = "non_convergence"
	// BubblePointFallback: the Standing correlation could not be used; Pb = 0.8·P_ws.
	BubblePointFallback Code = "bubble_point_fallback"
)

// Warning is a warning-class event reported alongside results.
type Warning struct {
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// New builds a Warning with a formatted message.
func New(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of warnings.
type List []Warning

// Has reports whether any warning carries the given code.
func (l List) Has(code Code) bool {
	for _, w := range l {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Count returns the number of warnings with the given code.
func (l List) Count(code Code) int {
	n := 0
	for _, w := range l {
		if w.Code == code {
			n++
		}
	}
	return n
}
