package reflection

import (
	"errors"
	"fmt"
)

// Kind categorizes a reflection service failure.
type Kind int

const (
	// KindValidation means the caller passed invalid input.
	KindValidation Kind = iota + 1
	// KindDependencyValidation means a dependency rejected the input.
	KindDependencyValidation
	// KindDependency means a dependency failed.
	KindDependency
	// KindService means the service itself failed unexpectedly.
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDependencyValidation:
		return "dependency_validation"
	case KindDependency:
		return "dependency"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// Error is returned by every reflection service.
type Error struct {
	// Op names the failing operation, e.g. "property.RetrieveProperties".
	Op string
	// Kind categorizes the failure.
	Kind Kind
	// Message is the human-readable description for the category.
	Message string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reflection: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("reflection: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Input validation failures.
var (
	ErrNilObject   = errors.New("object is required")
	ErrNilType     = errors.New("type is required")
	ErrEmptyTagKey = errors.New("attribute key is required")
	ErrNoField     = errors.New("property is required")
	ErrNotStruct   = errors.New("type is not a struct")
)

// ErrFailedService wraps panics recovered from the broker.
var ErrFailedService = errors.New("failed reflection service")

func newError(op string, kind Kind, subject string, err error) *Error {
	return &Error{Op: op, Kind: kind, Message: message(subject, kind), Err: err}
}

func message(subject string, kind Kind) string {
	switch kind {
	case KindValidation:
		return subject + " validation error occurred, fix errors and try again"
	case KindDependencyValidation:
		return subject + " dependency validation error occurred, fix errors and try again"
	case KindDependency:
		return subject + " dependency error occurred, fix errors and try again"
	default:
		return subject + " service error occurred, contact support"
	}
}

// KindOf returns the Kind of the outermost *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsDependencyValidation reports whether err is a dependency validation failure.
func IsDependencyValidation(err error) bool { return KindOf(err) == KindDependencyValidation }

// IsDependency reports whether err is a dependency failure.
func IsDependency(err error) bool { return KindOf(err) == KindDependency }

// IsService reports whether err is an internal service failure.
func IsService(err error) bool { return KindOf(err) == KindService }

// foundationError classifies a broker error for a foundation service.
func foundationError(op, subject string, err error) *Error {
	if errors.Is(err, ErrNotStruct) {
		return newError(op, KindDependencyValidation, subject, err)
	}
	return newError(op, KindDependency, subject, err)
}

// orchestrationError maps a foundation failure onto the orchestration's
// categories: caller mistakes surface as dependency validation, dependency
// and service faults as dependency, anything unrecognized as service.
func orchestrationError(op, subject string, err error) *Error {
	switch KindOf(err) {
	case KindValidation, KindDependencyValidation:
		return newError(op, KindDependencyValidation, subject, err)
	case KindDependency, KindService:
		return newError(op, KindDependency, subject, err)
	default:
		return newError(op, KindService, subject, err)
	}
}

// recoverService converts a panic inside a foundation call into a service error.
func recoverService(op, subject string, errp *error) {
	if r := recover(); r != nil {
		*errp = newError(op, KindService, subject, fmt.Errorf("%w: %v", ErrFailedService, r))
	}
}
