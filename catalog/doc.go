// Package catalog holds agent definitions: named, reusable configurations of
// model + system instructions + token budget.
//
// A catalog is immutable once built. The process-wide base catalog is created
// at startup by merging an external agents.yaml document with built-in
// fallback entries (externally supplied entries always win on id collision).
// Per-session re-imports land in an override tier (Store) so one session's
// upload never leaks into another; reads consult override then base.
//
// Imports are all-or-nothing. A document missing the expected top-level
// agents collection goes through a best-effort LLM-assisted normalization
// pass (Normalizer) before a hard ValidationError is surfaced, and a failed
// import leaves the previously active catalog untouched.
package catalog
