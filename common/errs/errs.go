package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// SomethingWentWrong is returned when an unexpected error occurred.
	SomethingWentWrong = ErrorKind("Something went wrong")

	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when a given argument or configuration is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a requested feature, network or driver is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Conflict is returned when a write collides with existing state.
	Conflict = ErrorKind("Conflict")

	// Unauthorized is returned when a caller can't prove its identity or authority.
	Unauthorized = ErrorKind("Unauthorized")

	// PreconditionFailed is returned when the system is not in the state an operation requires.
	PreconditionFailed = ErrorKind("Precondition Failed")

	// DependencyFailed is returned when an external collaborator rejected or failed a delegated call.
	DependencyFailed = ErrorKind("Dependency Failed")

	// Timeout is returned when an operation didn't finish in time.
	Timeout = ErrorKind("Timeout")

	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
