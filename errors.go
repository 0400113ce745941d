package deferred

import (
	"errors"
	"fmt"
	"strings"
)

// panic messages
const (
	nilHandlerPanicMsg = "deferred: the provided handler is nil"
	nilFuncPanicMsg    = "deferred: the provided function is nil"
	nilMapperPanicMsg  = "deferred: the provided mapper is nil"
	nilChanPanicMsg    = "deferred: the provided resChan is nil"
	nilPromisePanicMsg = "deferred: the provided promise is nil"
)

// ErrNoPromises is the rejection error of Any and Race when they are called
// without any promises.
var ErrNoPromises = errors.New("deferred: no promises provided")

// UniformError erases a promise's typed error into the plain error
// interface. It's produced by Generalize, so that promise chains with
// heterogeneous error types can be composed behind a single type.
type UniformError struct {
	err error
}

func (e *UniformError) Error() string {
	return fmt.Sprintf("deferred: generalized: %s", e.err)
}

func (e *UniformError) Unwrap() error {
	return e.err
}

func newUniformError(err error) *UniformError {
	return &UniformError{err: err}
}

// NoError is a sentinel error type for promises that are statically known
// to never fail. It has no meaningful values; code should never construct
// or receive one outside of type parameters.
type NoError struct{}

func (NoError) Error() string { return "deferred: no error" }

// joinErrors combines the non-nil errors in errs into one error value.
// Nil entries are skipped; a single remaining error is returned as-is.
func joinErrors(errs ...error) error {
	nonNil := errs[:0:0]
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	}
	return &joinError{errs: nonNil}
}

type joinError struct{ errs []error }

func (e *joinError) Error() string {
	b := strings.Builder{}
	for i, err := range e.errs {
		if i != 0 {
			b.WriteString(": ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *joinError) Unwrap() []error { return e.errs }
