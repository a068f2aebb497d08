// Copyright © 2024 The ELPS authors

package lang

import (
	"bufio"
	"fmt"
	"io"
)

// Error condition names.  These are stable API for programmatic error
// classification in tooling integrations.
const (
	CondMalformedTerm            = "malformed-term"
	CondUnknownOperator          = "unknown-operator"
	CondArityMismatch            = "arity-mismatch"
	CondNoOverloadForArity       = "no-overload-for-arity"
	CondEvaluationDepthExceeded  = "evaluation-depth-exceeded"
	CondUnmatchedVariant         = "unmatched-variant"
	CondFieldIndexOutOfRange     = "field-index-out-of-range"
	CondAborted                  = "aborted"
	CondDuplicateOperator        = "duplicate-operator"
	CondRegistryMutatedAfterSeal = "registry-mutated-after-seal"
	CondContextCancelled         = "context-cancelled"
	CondTypeError                = "type-error"
	CondGoError                  = "go-error"
)

// Sentinels for use with errors.Is.  Two ErrorVals match when their
// conditions are equal.
var (
	ErrMalformedTerm            = &ErrorVal{Condition: CondMalformedTerm}
	ErrUnknownOperator          = &ErrorVal{Condition: CondUnknownOperator}
	ErrArityMismatch            = &ErrorVal{Condition: CondArityMismatch}
	ErrNoOverloadForArity       = &ErrorVal{Condition: CondNoOverloadForArity}
	ErrEvaluationDepthExceeded  = &ErrorVal{Condition: CondEvaluationDepthExceeded}
	ErrUnmatchedVariant         = &ErrorVal{Condition: CondUnmatchedVariant}
	ErrFieldIndexOutOfRange     = &ErrorVal{Condition: CondFieldIndexOutOfRange}
	ErrAborted                  = &ErrorVal{Condition: CondAborted}
	ErrDuplicateOperator        = &ErrorVal{Condition: CondDuplicateOperator}
	ErrRegistryMutatedAfterSeal = &ErrorVal{Condition: CondRegistryMutatedAfterSeal}
	ErrContextCancelled         = &ErrorVal{Condition: CondContextCancelled}
	ErrTypeError                = &ErrorVal{Condition: CondTypeError}
	ErrGoError                  = &ErrorVal{Condition: CondGoError}
)

// ErrorVal is the error type returned by registration and evaluation.  The
// Condition classifies the error.  Which of the remaining fields are set
// depends on the condition:
//
//	unknown-operator             Name
//	arity-mismatch               Name, Expected (declared arity), Got
//	no-overload-for-arity        Name (overload base), Got
//	evaluation-depth-exceeded    Expected (the bound that was exceeded)
//	unmatched-variant            Name (the variant tag)
//	field-index-out-of-range     Got (index), Expected (record arity)
//	aborted                      Msg
//	duplicate-operator           Name
//	registry-mutated-after-seal  Name
//	go-error                     Err (a plain error returned by an operator)
type ErrorVal struct {
	Condition string
	Name      string
	Msg       string
	Expected  int
	Got       int

	// Term is the call being reduced when the error occurred.
	Term *Term

	// Stack is a copy of the evaluation call stack at the time of the error.
	Stack *CallStack

	// Err is an underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	msg := e.message()
	if e.Term != nil && e.Term.Source != nil {
		return fmt.Sprintf("%s: %s: %s", e.Term.Source, e.Condition, msg)
	}
	return fmt.Sprintf("%s: %s", e.Condition, msg)
}

// ErrorMessage returns the error message without the condition or location.
func (e *ErrorVal) ErrorMessage() string {
	return e.message()
}

func (e *ErrorVal) message() string {
	switch e.Condition {
	case CondUnknownOperator:
		return fmt.Sprintf("unknown operator: %s", e.Name)
	case CondArityMismatch:
		return fmt.Sprintf("%s: expected %d arguments (got %d)", e.Name, e.Expected, e.Got)
	case CondNoOverloadForArity:
		return fmt.Sprintf("%s: no overload for %d arguments", e.Name, e.Got)
	case CondEvaluationDepthExceeded:
		if e.Msg != "" {
			return fmt.Sprintf("%s exceeded maximum: %d", e.Msg, e.Expected)
		}
		return fmt.Sprintf("evaluation depth exceeded maximum: %d", e.Expected)
	case CondUnmatchedVariant:
		return fmt.Sprintf("no arm matches variant: %s", e.Name)
	case CondFieldIndexOutOfRange:
		return fmt.Sprintf("field index %d out of range for record of arity %d", e.Got, e.Expected)
	case CondDuplicateOperator:
		return fmt.Sprintf("operator already registered: %s", e.Name)
	case CondRegistryMutatedAfterSeal:
		return fmt.Sprintf("registry is sealed: cannot register %s", e.Name)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *ErrorVal) Unwrap() error {
	return e.Err
}

// Is reports whether target is an ErrorVal with the same condition.
func (e *ErrorVal) Is(target error) bool {
	t, ok := target.(*ErrorVal)
	if !ok {
		return false
	}
	return t.Condition == e.Condition
}

// FunName returns the name of the operator on top of the call stack when the
// error occurred.
func (e *ErrorVal) FunName() string {
	if top := e.Stack.Top(); top != nil {
		return top.Name
	}
	return ""
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	if e.Stack != nil {
		if !wrote(e.Stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Errorf returns an error with the given condition and a formatted message.
// Operator implementations use Errorf to report library-specific failures.
func Errorf(condition string, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		Condition: condition,
		Msg:       fmt.Sprintf(format, v...),
	}
}

// TypeErrorf returns a type-error for a bad operator argument.
func TypeErrorf(format string, v ...interface{}) *ErrorVal {
	return Errorf(CondTypeError, format, v...)
}

// UnmatchedVariant returns an unmatched-variant error for tag.
func UnmatchedVariant(tag string) *ErrorVal {
	return &ErrorVal{Condition: CondUnmatchedVariant, Name: tag}
}

// FieldIndexOutOfRange returns a field-index-out-of-range error.
func FieldIndexOutOfRange(index, arity int) *ErrorVal {
	return &ErrorVal{Condition: CondFieldIndexOutOfRange, Got: index, Expected: arity}
}

// Abort returns an aborted error carrying msg.  Operator implementations
// return the result of Abort to stop evaluation with a diagnostic.
func Abort(msg string) *ErrorVal {
	return &ErrorVal{Condition: CondAborted, Msg: msg}
}

func malformedf(format string, v ...interface{}) *ErrorVal {
	return Errorf(CondMalformedTerm, format, v...)
}

func depthExceeded(what string, bound int) *ErrorVal {
	return &ErrorVal{Condition: CondEvaluationDepthExceeded, Msg: what, Expected: bound}
}
