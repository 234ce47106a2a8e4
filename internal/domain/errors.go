package domain

import "errors"

// Error taxonomy shared by services and the HTTP layer. Services wrap these
// with fmt.Errorf("...: %w", Err...) so callers can branch with errors.Is
// while still getting a specific message.
var (
	// ErrDenied covers both "organization not found" and "actor is not a
	// member". The two cases must stay indistinguishable so a caller cannot
	// probe for the existence of other tenants' organizations.
	ErrDenied = errors.New("access denied")

	// ErrNotFound also covers cross-tenant references: an entity that exists
	// but belongs to another organization is reported as not found.
	ErrNotFound = errors.New("not found")

	ErrValidation = errors.New("invalid input")

	// ErrConflict signals a uniqueness violation, e.g. two concurrent
	// generate-next calls racing on the same rent schedule.
	ErrConflict = errors.New("conflict")
)
