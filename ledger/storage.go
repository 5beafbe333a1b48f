/*
storage.go - Persistence contract for the ledger engine

PURPOSE:
  Defines the interface between the engine and the durable store. The store
  is a key-value surface with four independently keyed slots, each holding
  the full serialized collection. There are no incremental writes: every
  mutation overwrites the affected slot(s) verbatim.

CONTRACT:
  - LoadSlot: read a slot into v. Returns ErrSlotNotFound if the slot has
    never been written. Any error (missing, corrupt) makes the engine fall
    back to an empty collection; persistence failures are never user-visible
    at load time.
  - SaveSlot: serialize v and overwrite the slot. Fired on every mutation;
    a crash before the flush loses that mutation, which is acceptable for a
    single local user.

IMPLEMENTATIONS:
  - ledger/store: in-memory, for tests and dev
  - store/sqlite: durable single-file SQLite store

SEE ALSO:
  - engine.go: Load-at-init and flush-on-mutation call sites
*/
package ledger

import "context"

// Slot names. These are the de facto keys for any persisted data.
const (
	SlotAccounts     = "accounts"
	SlotTransactions = "transactions"
	SlotGoals        = "goals"
	SlotDebts        = "debts"
)

// Storage is the durable key-value store the engine flushes to.
type Storage interface {
	// LoadSlot reads the named slot into v (a pointer to a collection).
	// Returns ErrSlotNotFound for slots that were never written.
	LoadSlot(ctx context.Context, slot string, v any) error

	// SaveSlot overwrites the named slot with the serialized form of v.
	SaveSlot(ctx context.Context, slot string, v any) error
}
