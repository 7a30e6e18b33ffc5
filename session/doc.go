// Package session scopes all mutable state to one user session: the
// workflow, the run log, the catalog override tier, and session-supplied
// credentials.
//
// Isolation is mandatory, not cosmetic: session credentials are secrets, so a
// Session must never be shared or mutated across sessions. Process-wide state
// (the base catalog, environment credential configuration, the model→provider
// table) is read-only and safe for concurrent readers across sessions.
package session
