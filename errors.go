package datrie

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// ErrorKind classifies a build-time failure. Query-side sentinels (-1, -2)
// are not errors; they are ordinary int32 return values.
type ErrorKind int

const (
	// NegativeValue is raised when a key is added with a value < 0.
	NegativeValue ErrorKind = iota
	// ZeroLengthKey is raised when an empty key is added.
	ZeroLengthKey
	// WrongKeyOrder is raised when keys are not presented in strictly
	// ascending lexicographic order.
	WrongKeyOrder
	// OffsetTooLarge is raised when the double-array builder cannot encode
	// an XOR offset within the 29-bit layout.
	OffsetTooLarge
	// MismatchedValues is raised when Build is given a Values slice whose
	// length does not match Keys.
	MismatchedValues
	// OutOfMemory names an internal allocation failure. No function in this
	// package returns it: a failed allocation in Go ends the program instead
	// of returning an error.
	OutOfMemory
	// IoError wraps a failure opening, seeking, reading, or writing the
	// persisted array.
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case NegativeValue:
		return "NegativeValue"
	case ZeroLengthKey:
		return "ZeroLengthKey"
	case WrongKeyOrder:
		return "WrongKeyOrder"
	case OffsetTooLarge:
		return "OffsetTooLarge"
	case MismatchedValues:
		return "MismatchedValues"
	case OutOfMemory:
		return "OutOfMemory"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// BuildError is the domain exception raised by build-time hard errors. Its
// message follows "file:line: reason", matching the convention set out for
// build failures.
type BuildError struct {
	Kind ErrorKind
	File string
	Line int
	Msg  string
	Err  error // wrapped cause, for IoError
}

func (e *BuildError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// newBuildError constructs a BuildError attributed to the caller of the
// function that calls newBuildError (skip = 2 frames: this function and its
// direct caller).
func newBuildError(kind ErrorKind, msg string) error {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return &BuildError{Kind: kind, Msg: msg}
	}
	return &BuildError{Kind: kind, File: filepath.Base(file), Line: line, Msg: msg}
}

func newBuildErrorf(kind ErrorKind, format string, args ...any) error {
	_, file, line, ok := runtime.Caller(2)
	msg := fmt.Sprintf(format, args...)
	if !ok {
		return &BuildError{Kind: kind, Msg: msg}
	}
	return &BuildError{Kind: kind, File: filepath.Base(file), Line: line, Msg: msg}
}

func wrapIoError(err error) error {
	if err == nil {
		return nil
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return &BuildError{Kind: IoError, Msg: err.Error(), Err: err}
	}
	return &BuildError{Kind: IoError, File: filepath.Base(file), Line: line, Msg: err.Error(), Err: err}
}
