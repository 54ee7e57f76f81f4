package errs

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/withstack"
)

// PublicError carries a message that is safe to return to API clients.
// The wrapped error keeps the internal detail for logs and errors.Is.
type PublicError struct {
	err     error
	message string
	code    string
}

func (p PublicError) Error() string { return p.err.Error() }

func (p PublicError) Unwrap() error { return p.err }

// Message is the client facing message.
func (p PublicError) Message() string { return p.message }

// Code is an optional machine readable identifier, e.g. "INVALID_MINT_INDEX".
func (p PublicError) Code() string { return p.code }

func NewPublicError(message string) error {
	return newPublicError(errors.New(message), message, "")
}

func NewPublicErrorWithCode(message string, code string) error {
	return newPublicError(errors.New(message), message, code)
}

// WithPublicMessage exposes err.Error(), optionally prefixed, to clients.
func WithPublicMessage(err error, prefix string) error {
	return WithPublicMessageCode(err, prefix, "")
}

func WithPublicMessageCode(err error, prefix string, code string) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if prefix != "" {
		message = prefix + ": " + message
	}
	return newPublicError(err, message, code)
}

func newPublicError(err error, message, code string) error {
	return withstack.WithStackDepth(&PublicError{err: err, message: message, code: code}, 2)
}
