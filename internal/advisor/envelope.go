package advisor

// Envelope is the uniform answer of a boundary operation. Exactly one of
// Data and Error is set; build it with Succeed or Fail.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Succeed[T any](v T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &v}
}

func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Error: message}
}

// Value returns the payload of a successful envelope.
func (e Envelope[T]) Value() (T, bool) {
	if !e.Success || e.Data == nil {
		var zero T
		return zero, false
	}
	return *e.Data, true
}
