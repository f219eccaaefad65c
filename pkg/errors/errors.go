// Package errors provides structured error handling for semkit.
//
// The model itself never fails on inconsistent data. Errors come from the
// layers around it: loading descriptions, validating input, resolving
// resources, and user code panicking inside actions.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindApply indicates a failure while applying an action.
	KindApply
	// KindCheck indicates a failure while evaluating an action check.
	KindCheck
	// KindDescribe indicates an invalid application description.
	KindDescribe
	// KindValidation indicates a value not conforming to its type.
	KindValidation
	// KindResource indicates a resource that could not be resolved or loaded.
	KindResource
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindApply:
		return "apply"
	case KindCheck:
		return "check"
	case KindDescribe:
		return "describe"
	case KindValidation:
		return "validation"
	case KindResource:
		return "resource"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ModelError represents a structured error raised around the model.
type ModelError struct {
	// Op is the operation that failed (e.g., "describe.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Entity is the label of the entity involved, if any.
	Entity string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ModelError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s [%s] entity=%q: %v", e.Op, e.Kind, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "model.Invoke(Quit)").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError locates a problem in a description file.
type ParseError struct {
	// File is the description file, empty when parsing bytes.
	File string
	// Path is the location inside the document (e.g., "vars[2].type").
	Path string
	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.File != "" {
		loc = e.File + ": " + loc
	}
	if loc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

// ValidationError reports a value rejected for a variable or type.
type ValidationError struct {
	// Label is the label of the variable or type.
	Label string
	// Value is the rejected value.
	Value any
	// Reason explains the rejection.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("invalid value %v for %s: %s", e.Value, e.Label, e.Reason)
	}
	return fmt.Sprintf("invalid value %v: %s", e.Value, e.Reason)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ModelError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
