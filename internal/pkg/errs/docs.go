// Package errs provides the error vocabulary shared by the dispatch core.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value violates a domain rule
//   - ValueIsOutOfRangeError: a value lies outside an allowed interval
//   - ObjectNotFoundError: an addressed entity does not exist
//   - TransitionRejectedError: the entity exists but its state forbids the action
//   - UnavailableError: a backing store failed transiently
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Inbound adapters classify failures with errors.Is against the sentinels
// and never inspect message text.
package errs
