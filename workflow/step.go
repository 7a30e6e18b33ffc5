package workflow

// Status is the per-step execution state. Terminal states (Done, Error) are
// re-enterable: explicitly re-running a step moves it back to Thinking and
// overwrites the prior outcome.
type Status int

const (
	// StatusIdle means the step has never run since its last reset.
	StatusIdle Status = iota
	// StatusThinking means a provider call is in flight for this step.
	StatusThinking
	// StatusDone means the last run succeeded and Output holds its result.
	StatusDone
	// StatusError means the last run failed; Output still holds the last
	// successful result, if any.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusThinking:
		return "thinking"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Step is one unit of the pipeline. Keeping step, output and status in a
// single record removes the equal-length bookkeeping that parallel slices
// would require.
type Step struct {
	// AgentID references the agent definition this step is based on.
	AgentID string `json:"agent_id"`
	// Name is the display name shown for this step.
	Name string `json:"name"`
	// Model is the effective model, defaulting to the agent's model.
	Model string `json:"model"`
	// MaxTokens is the effective token budget, defaulting to the agent's.
	MaxTokens int `json:"max_tokens"`
	// Prompt is the user-editable instruction for this step.
	Prompt string `json:"prompt"`
	// Input is the resolved input captured by value at the moment the step
	// last ran.
	Input string `json:"input"`
	// Output is the step's result. Editable after execution; it becomes the
	// next step's input.
	Output string `json:"output"`
	// Status is the step's execution state.
	Status Status `json:"status"`
	// LastError carries the surfaced failure message of the last run, empty
	// after a success.
	LastError string `json:"last_error,omitempty"`
}
