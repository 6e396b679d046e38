// Package store keeps the client-side mirrors of server state.
//
// AuthStore holds the authenticated identity; TicketStore holds the
// user/all ticket list and the assigned ticket list. Every mutating
// operation is pessimistic: the store marks the operation busy, performs
// exactly one backend call, and only on success patches the affected
// ticket in place. Each completed call emits one notification through
// notify.Notifier and, on failure, one log line. Errors are returned as
// well so callers that care can react; failures never leave partial
// state behind.
//
// State is guarded by a mutex that is never held across a network call,
// so a patch is always applied to the state current at the time the call
// returns. Readers get deep copies through Snapshot.
package store
