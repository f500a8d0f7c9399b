package genflow

import (
	"errors"
	"fmt"
	"strings"
)

// FaultKind classifies why a generation request did not produce a value.
type FaultKind string

const (
	FaultValidation FaultKind = "validation"
	FaultGeneration FaultKind = "generation"
	FaultDecoding   FaultKind = "decoding"
	FaultTimeout    FaultKind = "timeout"
)

// Sentinels for errors.Is matching against a *Fault.
var (
	ErrValidation = errors.New("validation fault")
	ErrGeneration = errors.New("generation fault")
	ErrDecoding   = errors.New("decoding fault")
	ErrTimeout    = errors.New("timeout fault")
)

var errNoReply = errors.New("model returned no reply")

// Fault is the single error type produced by the pipeline.
// Field is the path of the offending field when one is known.
type Fault struct {
	Kind  FaultKind
	Field string
	Err   error
}

func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString(string(f.Kind))
	b.WriteString(" fault")
	if f.Field != "" {
		fmt.Fprintf(&b, " at %s", f.Field)
	}
	if f.Err != nil {
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

func (f *Fault) Unwrap() error { return f.Err }

func (f *Fault) Is(target error) bool {
	switch target {
	case ErrValidation:
		return f.Kind == FaultValidation
	case ErrGeneration:
		return f.Kind == FaultGeneration
	case ErrDecoding:
		return f.Kind == FaultDecoding
	case ErrTimeout:
		return f.Kind == FaultTimeout
	}
	return false
}

// FaultOf returns the *Fault in err's chain, if any.
func FaultOf(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func newFault(kind FaultKind, err error) *Fault {
	f := &Fault{Kind: kind, Err: err}
	var fe *FieldError
	if errors.As(err, &fe) {
		f.Field = fe.Path
	}
	return f
}

// FieldError reports the first field that does not conform to a descriptor.
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Path, e.Reason)
}
