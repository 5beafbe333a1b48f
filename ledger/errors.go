/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  Callers match with errors.Is().

ERROR POLICY:
  - Delete/pay on a missing id is a silent no-op, NOT an error. Callers
    cannot distinguish "succeeded" from "nothing to do"; this is the
    compatibility baseline for existing persisted data.
  - Invalid input (non-positive amount, transfer without a destination) is
    rejected at the engine boundary before any state is touched. A rejected
    operation leaves no partial state behind.
  - Dangling references (deleted account still referenced by transactions or
    goals) are tolerated permanently and never surfaced as errors.
  - A missing or unparsable storage slot is recovered locally by starting
    from an empty collection; it never propagates out of Load.

SEE ALSO:
  - engine.go: Where these are returned
  - storage.go: ErrSlotNotFound contract for Storage implementations
*/
package ledger

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned when a transaction, goal, or debt amount
	// is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAccountRequired is returned when an operation needs an account id
	// and none was given.
	ErrAccountRequired = errors.New("account id required")

	// ErrMissingTransferDestination is returned when a transfer has no
	// related account to receive the funds.
	ErrMissingTransferDestination = errors.New("transfer requires a destination account")

	// ErrNameRequired is returned when a named entity is created without a name.
	ErrNameRequired = errors.New("name required")

	// ErrSlotNotFound is returned by Storage implementations when a slot has
	// never been written. The engine treats it as an empty collection.
	ErrSlotNotFound = errors.New("storage slot not found")
)

// IsClientError returns true if the error is due to invalid caller input
// rather than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrAccountRequired) ||
		errors.Is(err, ErrMissingTransferDestination) ||
		errors.Is(err, ErrNameRequired)
}
