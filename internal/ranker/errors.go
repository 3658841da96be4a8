package ranker

import "fmt"

// ErrorKind classifies ranking failures.
type ErrorKind uint8

const (
	// InvalidQueryKind marks a query point outside the valid coordinate ranges.
	InvalidQueryKind ErrorKind = iota + 1
	// InvalidArgumentKind marks a non-positive result limit.
	InvalidArgumentKind
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidQueryKind:
		return "invalid query"
	case InvalidArgumentKind:
		return "invalid argument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is returned by Rank when the call itself cannot be served.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}

	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so errors.Is works against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidQuery    = &Error{Kind: InvalidQueryKind}
	ErrInvalidArgument = &Error{Kind: InvalidArgumentKind}
)
