package ai

// Outcome is the result of one remote attempt: either a value or the reason
// the attempt failed. Remote failure is an ordinary branch, not an exception.
type Outcome[T any] struct {
	value  T
	reason error
}

func Success[T any](v T) Outcome[T] { return Outcome[T]{value: v} }

// Failure wraps reason; a nil reason is replaced so the outcome stays a failure.
func Failure[T any](reason error) Outcome[T] {
	if reason == nil {
		reason = ErrMalformedResponse
	}
	return Outcome[T]{reason: reason}
}

func (o Outcome[T]) OK() bool { return o.reason == nil }

// Get returns the value and whether the outcome succeeded.
func (o Outcome[T]) Get() (T, bool) { return o.value, o.reason == nil }

func (o Outcome[T]) Reason() error { return o.reason }
