package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrValidationFailed   = errors.New("validation failed")
	ErrDependencyConflict = errors.New("dependency conflict")
	ErrEmptyInput         = errors.New("no data supplied")
)

// BaseField collects messages that do not belong to a single attribute.
const BaseField = "base"

// FieldErrors maps an attribute name to the messages raised against it.
// Its JSON form is the {field: [message, ...]} object returned to clients.
type FieldErrors map[string][]string

// Add appends a message to field, allocating the map lazily.
func (f *FieldErrors) Add(field, message string) {
	if *f == nil {
		*f = FieldErrors{}
	}
	(*f)[field] = append((*f)[field], message)
}

// Merge copies every message from other into f.
func (f *FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		for _, m := range messages {
			f.Add(field, m)
		}
	}
}

func (f FieldErrors) IsEmpty() bool {
	return len(f) == 0
}

// Fields returns the attribute names in stable order.
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (f FieldErrors) String() string {
	parts := make([]string, 0, len(f))
	for _, field := range f.Fields() {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(f[field], ", ")))
	}
	return strings.Join(parts, "; ")
}

// AuthorizationError means the actor has no manageable relation to the target.
// Message is safe to show to the user.
type AuthorizationError struct {
	Action  string
	Message string
}

func NewAuthorizationError(action, message string) *AuthorizationError {
	return &AuthorizationError{Action: action, Message: message}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrNotAuthorized, e.Action, e.Message)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

// ValidationError carries field level messages. The entity it was raised for is left unchanged.
type ValidationError struct {
	Fields FieldErrors
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldValidationError is a shortcut for a single message on a single field.
func NewFieldValidationError(field, message string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ConflictReason names the dependent state that blocks a destructive operation.
type ConflictReason string

const (
	ReasonOrdersPresent   ConflictReason = "orders_present"
	ReasonSchedulePresent ConflictReason = "schedule_present"
)

// DependencyConflictError is returned when dependent records prevent an operation.
type DependencyConflictError struct {
	Reason  ConflictReason
	Message string
	Cause   error
}

func NewDependencyConflictError(reason ConflictReason, message string) *DependencyConflictError {
	return &DependencyConflictError{Reason: reason, Message: message}
}

func NewDependencyConflictErrorWithCause(reason ConflictReason, message string, cause error) *DependencyConflictError {
	return &DependencyConflictError{Reason: reason, Message: message, Cause: cause}
}

func (e *DependencyConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDependencyConflict, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDependencyConflict, e.Reason)
}

func (e *DependencyConflictError) Unwrap() error {
	return ErrDependencyConflict
}

// EmptyInputError is returned when a batch request carries no rows at all.
type EmptyInputError struct {
	ParamName string
}

func NewEmptyInputError(paramName string) *EmptyInputError {
	return &EmptyInputError{ParamName: paramName}
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptyInput, e.ParamName)
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}
