// Package errs provides standardized error types for the order cycle service.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ObjectNotFoundError) raised by
//     constructors and repositories;
//   - the request taxonomy (AuthorizationError, ValidationError, DependencyConflictError,
//     EmptyInputError) that command handlers hand back to callers as data.
//
// Each error type follows the same pattern: a sentinel error variable, a struct carrying the
// details, constructors with and without a cause, and an Unwrap method returning the sentinel
// so callers can classify with errors.Is / errors.As.
package errs
