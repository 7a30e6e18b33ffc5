// Package history keeps an append-only, session-scoped log of agent runs for
// dashboards and cost visibility.
//
// Records are immutable once appended and ordered by insertion. The token
// figure attached to each record is a coarse length heuristic, not a
// billing-accurate count. The log is cleared only by explicit user action.
package history
