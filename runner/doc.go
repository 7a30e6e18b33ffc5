// Package runner executes one agent invocation at a time: the one-step
// variant of the workflow used by non-pipeline surfaces (note magics,
// document review forms, dashboards).
//
// A run resolves the agent definition, applies optional per-run overrides,
// issues one blocking dispatch, and appends a run record. No retries, no
// chaining.
package runner
