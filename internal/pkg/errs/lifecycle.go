package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrMissingBillingInfo = errors.New("missing billing info")
	ErrConflict           = errors.New("conflict")
	ErrTransportFailure   = errors.New("transport failure")
)

// ObjectsNotFoundError reports the subset of a batch request that does not exist.
// It unwraps to ErrObjectNotFound so callers can treat it like a single miss.
type ObjectsNotFoundError struct {
	ParamName string
	IDs       []string
}

func NewObjectsNotFoundError(paramName string, ids []string) *ObjectsNotFoundError {
	return &ObjectsNotFoundError{
		ParamName: paramName,
		IDs:       ids,
	}
}

func (e *ObjectsNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrObjectNotFound, e.ParamName, strings.Join(e.IDs, ", "))
}

func (e *ObjectsNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError reports a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrInvalidTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// MissingBillingInfoError reports a delivery attempted on an order without shipping.
type MissingBillingInfoError struct {
	ID any
}

func NewMissingBillingInfoError(id any) *MissingBillingInfoError {
	return &MissingBillingInfoError{ID: id}
}

func (e *MissingBillingInfoError) Error() string {
	return fmt.Sprintf("%s: order %s has no priced shipment", ErrMissingBillingInfo, e.ID)
}

func (e *MissingBillingInfoError) Unwrap() error {
	return ErrMissingBillingInfo
}

// ConflictError reports an update that lost a race against a concurrent writer.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.ParamName, e.ID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// TransportFailureError reports a push or broadcast that did not reach its target.
// It is only ever logged.
type TransportFailureError struct {
	Transport string
	Target    string
	Cause     error
}

func NewTransportFailureError(transport, target string, cause error) *TransportFailureError {
	return &TransportFailureError{Transport: transport, Target: target, Cause: cause}
}

func (e *TransportFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s to %s (cause: %v)", ErrTransportFailure, e.Transport, e.Target, e.Cause)
	}
	return fmt.Sprintf("%s: %s to %s", ErrTransportFailure, e.Transport, e.Target)
}

// Unwrap exposes both the sentinel and the cause.
func (e *TransportFailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransportFailure, e.Cause}
	}
	return []error{ErrTransportFailure}
}
