package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent API for constructing rich errors.
// A builder is terminated with Mark, which classifies the error against one
// of the sentinel codes in codes.go.
type ErrorBuilder struct {
	err     error
	hint    string
	details map[string]interface{}
}

// NewError starts a builder from a plain message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(message)}
}

// NewErrorf starts a builder from a formatted message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder wrapping an existing error.
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{err: err}
}

// WithHint attaches a user-facing hint to the error.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hint = hint
	return b
}

// WithHintf attaches a formatted user-facing hint to the error.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hint = fmt.Sprintf(format, args...)
	return b
}

// WithMessage wraps the underlying error with an additional message.
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, message)
	return b
}

// WithReportableDetails attaches structured details that are safe to return
// to API callers.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.details = details
	return b
}

// Mark finalizes the builder, classifying the error with the given sentinel.
func (b *ErrorBuilder) Mark(code error) error {
	err := b.err
	if b.hint != "" {
		err = errors.WithHint(err, b.hint)
	}
	if len(b.details) > 0 {
		err = withDetails(err, b.details)
	}
	return errors.Mark(err, code)
}

// detailedError carries reportable details through the error chain.
type detailedError struct {
	cause   error
	details map[string]interface{}
}

func withDetails(err error, details map[string]interface{}) error {
	return &detailedError{cause: err, details: details}
}

func (e *detailedError) Error() string { return e.cause.Error() }
func (e *detailedError) Cause() error  { return e.cause }
func (e *detailedError) Unwrap() error { return e.cause }

// Details extracts the innermost reportable details from an error chain.
func Details(err error) map[string]interface{} {
	for err != nil {
		if de, ok := err.(*detailedError); ok {
			return de.details
		}
		err = errors.UnwrapOnce(err)
	}
	return nil
}

// Hint extracts the first hint attached to the error chain.
func Hint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}
