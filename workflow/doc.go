// Package workflow implements the step-sequenced pipeline at the heart of the
// workspace: an ordered list of agent invocations where each step hands its
// (possibly hand-edited) output to the next step as input.
//
// Execution is strictly synchronous and human-gated. One RunStep call issues
// exactly one blocking provider dispatch; nothing runs automatically, and
// RunStepAndAdvance only moves the cursor after success, never executes the
// next step. A step's input is resolved fresh at run time, so editing an
// earlier step's output is honored by later runs without re-running the
// earlier step, while already-stored downstream outputs never change
// retroactively.
//
// Engine wraps a Workflow in a single command-consuming goroutine with
// state-changed events, giving presentation layers a message-passing surface
// instead of shared mutable state.
package workflow
