package operations

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeDependency   ErrorType = "dependency"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeCycle        ErrorType = "cycle"
	ErrorTypeCancellation ErrorType = "cancellation"
)

// OperationError describes why a plan could not be built or run
type OperationError struct {
	Type    ErrorType              `json:"type"`
	Step    string                 `json:"step,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	if e.Step != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Step, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewDependencyError reports a step input that no step produces and the
// source table does not contain
func NewDependencyError(step, column string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeDependency,
		Step:    step,
		Message: fmt.Sprintf("input column %q is neither produced by a step nor present in the source", column),
		Context: map[string]interface{}{
			"column": column,
		},
	}
}

// NewConflictError reports two steps writing the same column
func NewConflictError(column, first, second string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeConflict,
		Step:    second,
		Message: fmt.Sprintf("column %q is already produced by step %s", column, first),
		Context: map[string]interface{}{
			"column":      column,
			"produced_by": first,
		},
	}
}

// NewCycleError reports steps that depend on each other
func NewCycleError(steps []string) *OperationError {
	sorted := append([]string(nil), steps...)
	sort.Strings(sorted)
	return &OperationError{
		Type:    ErrorTypeCycle,
		Message: fmt.Sprintf("dependency cycle among steps: %s", strings.Join(sorted, ", ")),
		Context: map[string]interface{}{
			"steps": sorted,
		},
	}
}

// NewCancellationError reports a run stopped before step ran
func NewCancellationError(step string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeCancellation,
		Step:    step,
		Message: "operation was cancelled",
		Cause:   cause,
	}
}

// GetErrorType returns the type of the error, or "" when err is not an
// OperationError
func GetErrorType(err error) ErrorType {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Type
	}
	var list *ErrorList
	if errors.As(err, &list) && len(list.Errors) > 0 {
		return list.Errors[0].Type
	}
	return ""
}

// ErrorList represents multiple errors
type ErrorList struct {
	Errors []*OperationError `json:"errors"`
}

// Error implements the error interface
func (e *ErrorList) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Add adds an error to the list
func (e *ErrorList) Add(err *OperationError) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *ErrorList) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrOrNil returns the list as an error, or nil when it is empty
func (e *ErrorList) ErrOrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}
