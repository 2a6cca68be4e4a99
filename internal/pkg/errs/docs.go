// Package errs provides standardized error types for the courierhub application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ObjectsNotFoundError: For when part of a requested batch cannot be found
//   - InvalidTransitionError: For status changes the order lifecycle forbids
//   - MissingBillingInfoError: For deliveries attempted without a priced shipment
//   - ConflictError: For concurrent updates that lost a race
//   - TransportFailureError: For push or broadcast delivery failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels and use errors.As
// when they need the details, for example the missing ids of a bulk request.
package errs
