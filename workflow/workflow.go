package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/history"
	"github.com/stackfield/agentstudio/logging"
	"github.com/stackfield/agentstudio/provider"
)

// handoffSeparator joins a step's prompt with its resolved input when
// building the effective user prompt.
const handoffSeparator = "\n\n---\n\n"

// component is the history log label for workflow runs.
const component = "Workflow Studio"

// Options configures a Workflow.
type Options struct {
	// DefaultAgentID seeds the initial step and parameterless appends.
	DefaultAgentID string
	// DefaultModel is used when an agent definition supplies no model.
	DefaultModel string
	// DefaultMaxTokens is used when an agent definition supplies no budget.
	DefaultMaxTokens int
	// Temperature applies to every dispatch issued by this workflow.
	Temperature float64
	// Logger receives step lifecycle diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Workflow owns an ordered list of steps, the cursor marking the step last
// focused or run, and the single global input consumed by step 0. A workflow
// always holds at least one step.
//
// All mutable state is owned by one session. Methods are safe for concurrent
// use, but execution is intended to be serialized (see Engine): a dispatched
// call runs to completion or failure with no mid-call cancellation.
type Workflow struct {
	catalog    *catalog.Store
	dispatcher provider.Dispatcher
	log        *history.Log
	opts       Options
	logger     logging.Logger

	mu     sync.Mutex
	steps  []Step
	cursor int
	input  string
}

// New constructs a workflow with a single default step.
func New(cat *catalog.Store, d provider.Dispatcher, log *history.Log, optFns ...func(o *Options)) *Workflow {
	opts := Options{
		DefaultAgentID:   "note_organizer",
		DefaultModel:     "gpt-4o-mini",
		DefaultMaxTokens: provider.DefaultMaxTokens,
		Temperature:      provider.DefaultTemperature,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	w := &Workflow{
		catalog:    cat,
		dispatcher: d,
		log:        log,
		opts:       opts,
		logger:     opts.Logger,
	}
	w.steps = []Step{w.buildStep(opts.DefaultAgentID)}
	return w
}

// buildStep constructs a step from an agent definition, falling back to the
// workflow defaults when the catalog does not hold the id.
func (w *Workflow) buildStep(agentID string) Step {
	step := Step{
		AgentID:   agentID,
		Name:      agentID,
		Model:     w.opts.DefaultModel,
		MaxTokens: w.opts.DefaultMaxTokens,
		Status:    StatusIdle,
	}
	if def, err := w.catalog.Get(agentID); err == nil {
		step.Name = def.Name
		step.Model = def.Model
		step.MaxTokens = def.MaxTokens
	}
	return step
}

// AppendStep inserts one step at the end, configured from the given agent's
// defaults with an empty prompt and Idle status.
func (w *Workflow) AppendStep(agentID string) error {
	if _, err := w.catalog.Get(agentID); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.steps = append(w.steps, w.buildStep(agentID))
	return nil
}

// RemoveLastStep pops the last step. A workflow always keeps at least one
// step, so this is a no-op when only one remains. The cursor is clamped.
func (w *Workflow) RemoveLastStep() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.steps) <= 1 {
		return
	}
	w.steps = w.steps[:len(w.steps)-1]
	if w.cursor > len(w.steps)-1 {
		w.cursor = len(w.steps) - 1
	}
}

// Replace swaps the entire step list for a template, resetting outputs,
// statuses, cursor and global input. Empty templates are rejected.
func (w *Workflow) Replace(steps []Step) error {
	if len(steps) == 0 {
		return errors.New("workflow requires at least one step")
	}
	fresh := make([]Step, len(steps))
	copy(fresh, steps)
	for i := range fresh {
		fresh[i].Input = ""
		fresh[i].Output = ""
		fresh[i].Status = StatusIdle
		fresh[i].LastError = ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.steps = fresh
	w.cursor = 0
	w.input = ""
	return nil
}

// Len returns the number of steps.
func (w *Workflow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.steps)
}

// Steps returns a defensive copy of the step list.
func (w *Workflow) Steps() []Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Step, len(w.steps))
	copy(out, w.steps)
	return out
}

// Step returns a copy of the step at index.
func (w *Workflow) Step(index int) (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return Step{}, err
	}
	return w.steps[index], nil
}

// Cursor returns the index of the step last focused or run.
func (w *Workflow) Cursor() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// SetCursor moves the cursor, clamped to the valid range.
func (w *Workflow) SetCursor(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(w.steps)-1 {
		index = len(w.steps) - 1
	}
	w.cursor = index
}

// Input returns the global workflow input consumed by step 0.
func (w *Workflow) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// SetInput replaces the global workflow input.
func (w *Workflow) SetInput(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = text
}

// SetStepPrompt replaces the step's instruction text.
func (w *Workflow) SetStepPrompt(index int, prompt string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return err
	}
	w.steps[index].Prompt = prompt
	return nil
}

// SetStepModel overrides the step's effective model. The model must resolve
// to a provider and pass the agent's allow-list, if one is set.
func (w *Workflow) SetStepModel(index int, model string) error {
	if _, err := provider.ResolveProvider(model); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return err
	}
	if def, err := w.catalog.Get(w.steps[index].AgentID); err == nil && !def.AllowsModel(model) {
		return fmt.Errorf("model %s not allowed for agent %s", model, def.ID)
	}
	w.steps[index].Model = model
	return nil
}

// SetStepMaxTokens overrides the step's effective token budget.
func (w *Workflow) SetStepMaxTokens(index, maxTokens int) error {
	if maxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return err
	}
	w.steps[index].MaxTokens = maxTokens
	return nil
}

// SetStepOutput hand-edits a step's output. The edit feeds later runs of the
// next step but never rewrites results the next step already stored.
func (w *Workflow) SetStepOutput(index int, output string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return err
	}
	w.steps[index].Output = output
	return nil
}

// ResolveInput returns the effective input for a step: the global workflow
// input for step 0, otherwise the current (possibly hand-edited) output of
// the preceding step. Evaluated fresh on every call, never cached.
func (w *Workflow) ResolveInput(index int) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.checkIndexLocked(index); err != nil {
		return "", err
	}
	return w.resolveInputLocked(index), nil
}

func (w *Workflow) resolveInputLocked(index int) string {
	if index == 0 {
		return w.input
	}
	return w.steps[index-1].Output
}

func (w *Workflow) checkIndexLocked(index int) error {
	if index < 0 || index >= len(w.steps) {
		return fmt.Errorf("step index %d out of range [0,%d)", index, len(w.steps))
	}
	return nil
}

// BuildUserPrompt joins a step prompt with its resolved input under the
// fixed handoff separator. When either side is empty the other passes
// through unseparated.
func BuildUserPrompt(prompt, input string) string {
	prompt = strings.TrimSpace(prompt)
	if input == "" {
		return prompt
	}
	if prompt == "" {
		return input
	}
	return prompt + handoffSeparator + input
}

// RunStep executes the step at index: status moves to Thinking, the input is
// resolved fresh and captured by value, one blocking dispatch runs, and the
// outcome lands in the step's output and status.
//
// On success the output is overwritten, status becomes Done and a run record
// is appended. On failure status becomes Error, the failure message is
// surfaced via the step and returned, the previous output is preserved for
// inspection, and the attempt is logged with ok=false, except for
// pre-execution configuration failures (unsupported model, missing
// credential), which produce no record because no run ever started.
// Re-running from Done or Error is always allowed. If the step is removed
// while its call is in flight, the result is discarded and an error returned;
// the run is still logged.
func (w *Workflow) RunStep(ctx context.Context, index int) error {
	w.mu.Lock()
	if err := w.checkIndexLocked(index); err != nil {
		w.mu.Unlock()
		return err
	}

	input := w.resolveInputLocked(index)
	w.steps[index].Status = StatusThinking
	w.steps[index].Input = input
	w.cursor = index

	step := w.steps[index]
	systemPrompt := ""
	if def, err := w.catalog.Get(step.AgentID); err == nil {
		systemPrompt = def.SystemPrompt
	}
	userPrompt := BuildUserPrompt(step.Prompt, input)
	req := provider.Request{
		Model:        step.Model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    step.MaxTokens,
		Temperature:  w.opts.Temperature,
	}
	w.mu.Unlock()

	w.logger.Debug("running workflow step", "step", index+1, "agent_id", step.AgentID, "model", step.Model)
	output, err := w.dispatcher.Dispatch(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	// The step list may have shrunk while the call was in flight. Steps are
	// never reordered, so an in-range index still names the same step; an
	// out-of-range index means the step was removed and its result has no
	// home. The call still happened, so it is still logged below.
	removed := w.checkIndexLocked(index) != nil

	if err != nil {
		if !removed {
			w.steps[index].Status = StatusError
			w.steps[index].LastError = err.Error()
		}
		if !isPreExecution(err) {
			w.log.Append(history.RunRecord{
				Component: component,
				Agent:     step.Name,
				Model:     step.Model,
				TokensEst: history.EstimateTokens(userPrompt),
				OK:        false,
				Meta:      stepMeta(step.AgentID, index),
			})
		}
		w.logger.Error("workflow step failed", "step", index+1, "agent_id", step.AgentID, "error", err.Error())
		return err
	}

	w.log.Append(history.RunRecord{
		Component: component,
		Agent:     step.Name,
		Model:     step.Model,
		TokensEst: history.EstimateTokens(userPrompt + output),
		OK:        true,
		Meta:      stepMeta(step.AgentID, index),
	})
	if removed {
		w.logger.Warn("workflow step removed while running, discarding result", "step", index+1, "agent_id", step.AgentID)
		return fmt.Errorf("step %d was removed while running", index+1)
	}
	w.steps[index].Output = output
	w.steps[index].Status = StatusDone
	w.steps[index].LastError = ""
	return nil
}

// RunStepAndAdvance performs RunStep, then moves the cursor to the next step
// when the run succeeded and a next step exists. The next step is never
// auto-executed; running always requires an explicit command.
func (w *Workflow) RunStepAndAdvance(ctx context.Context, index int) error {
	if err := w.RunStep(ctx, index); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if index+1 < len(w.steps) {
		w.cursor = index + 1
	}
	return nil
}

// Output returns the final step's output.
func (w *Workflow) Output() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[len(w.steps)-1].Output
}

// isPreExecution reports whether the failure happened before any provider
// call could start (configuration defects rather than run failures).
func isPreExecution(err error) bool {
	var unsupported *provider.UnsupportedModelError
	var missing *provider.MissingCredentialError
	return errors.As(err, &unsupported) || errors.As(err, &missing)
}

func stepMeta(agentID string, index int) map[string]string {
	return map[string]string{
		"agent_id":      agentID,
		"workflow_step": strconv.Itoa(index + 1),
	}
}
