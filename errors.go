package smsig

import "fmt"

// Error is the error type returned throughout this package.  Locked
// distinguishes a programming-fault invariant violation (spec class 2:
// fatal, must abort the caller) from an ordinary wrapped error.
type Error interface {
	error
	Locked() bool
	Inner() error
}

type errorImpl struct {
	msg    string
	locked bool
	inner  error
}

func (err *errorImpl) Locked() bool { return err.locked }
func (err *errorImpl) Inner() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// errorf formats a new Error.
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// wrapErrorf formats a new Error that wraps another.
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

// invariantf formats an Error with Locked() == true: an invariant
// violation of the kind spec.md §7 class 2 calls fatal (re-randomizing
// an already-randomized value, aggregating mismatched-length/index
// inputs, hashing the wrong cardinality). Callers that receive a Locked
// Error should abort rather than attempt recovery.
func invariantf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), locked: true}
}
