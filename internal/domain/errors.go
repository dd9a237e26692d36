package domain

import "fmt"

// Error taxonomy for the CQC (§7). Handlers never let a raw error escape
// process(); they either recover locally or return one of these, which the
// HTTP boundary in internal/handler maps to a transport-level outcome.

// ErrValidation indicates inbound data violated a contract (malformed
// phone, unknown button payload). Recovered locally by re-asking.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrIntegrity indicates a state precondition was violated (e.g. reached
// VALUE_PROPOSITION without a budget). Recovered locally by re-asking the
// missing upstream slot; logged at error level with the lead id.
type ErrIntegrity struct {
	LeadID string
	Reason string
}

func (e *ErrIntegrity) Error() string {
	return fmt.Sprintf("state integrity violated for lead %s: %s", e.LeadID, e.Reason)
}

// ErrTransientDependency indicates an oracle/cache/transport timeout or
// 5xx. Retried with backoff; if unresolved, the caller degrades (buttons,
// skip snippet, skip alert) and continues the turn.
type ErrTransientDependency struct {
	Dependency string
	Err        error
}

func (e *ErrTransientDependency) Error() string {
	return fmt.Sprintf("transient dependency error [%s]: %v", e.Dependency, e.Err)
}

func (e *ErrTransientDependency) Unwrap() error {
	return e.Err
}

// ErrFatalDependency indicates the durable store is unreachable. The turn
// aborts; the transport returns a retryable status.
type ErrFatalDependency struct {
	Dependency string
	Err        error
}

func (e *ErrFatalDependency) Error() string {
	return fmt.Sprintf("fatal dependency error [%s]: %v", e.Dependency, e.Err)
}

func (e *ErrFatalDependency) Unwrap() error {
	return e.Err
}

// ErrConfiguration indicates a missing admin channel, vertical, or tenant.
// Logged; the user-facing flow continues if possible.
type ErrConfiguration struct {
	Message string
}

func (e *ErrConfiguration) Error() string {
	return e.Message
}

// ErrNotFound indicates a requested entity does not exist (tenant-scoped).
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrConflict indicates a uniqueness or booking conflict (e.g. a schedule
// slot double-booked).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
