package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/history"
	"github.com/stackfield/agentstudio/logging"
	"github.com/stackfield/agentstudio/provider"
)

// Options configures a Runner.
type Options struct {
	// Temperature applies to every dispatch issued by this runner.
	Temperature float64
	// Logger receives run diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// RunOptions carries per-run overrides.
type RunOptions struct {
	// Component labels the run in the history log (e.g. "Note Keeper").
	Component string
	// Prompt is the instruction joined with the input. Empty runs the input
	// under the agent's system instructions alone.
	Prompt string
	// Model overrides the agent's default model. Must pass the agent's
	// allow-list when one is set.
	Model string
	// MaxTokens overrides the agent's default token budget.
	MaxTokens int
}

// Runner executes single agent invocations against the catalog and dispatcher.
type Runner struct {
	catalog    *catalog.Store
	dispatcher provider.Dispatcher
	log        *history.Log
	opts       Options
	logger     logging.Logger
}

// New constructs a Runner.
func New(cat *catalog.Store, d provider.Dispatcher, log *history.Log, optFns ...func(o *Options)) *Runner {
	opts := Options{Temperature: provider.DefaultTemperature, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{catalog: cat, dispatcher: d, log: log, opts: opts, logger: opts.Logger}
}

// Run executes the agent once over input and returns the response text.
// Configuration failures (unknown agent, disallowed model override,
// unsupported model, missing credential) return before any run record is
// appended; provider failures are recorded with ok=false.
func (r *Runner) Run(ctx context.Context, agentID, input string, optFns ...func(o *RunOptions)) (string, error) {
	def, err := r.catalog.Get(agentID)
	if err != nil {
		return "", err
	}

	runOpts := RunOptions{
		Component: "Run Agent",
		Model:     def.Model,
		MaxTokens: def.MaxTokens,
	}
	for _, fn := range optFns {
		fn(&runOpts)
	}
	if runOpts.Model != def.Model && !def.AllowsModel(runOpts.Model) {
		return "", fmt.Errorf("model %s not allowed for agent %s", runOpts.Model, def.ID)
	}

	userPrompt := joinPrompt(runOpts.Prompt, input)
	req := provider.Request{
		Model:        runOpts.Model,
		SystemPrompt: def.SystemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    runOpts.MaxTokens,
		Temperature:  r.opts.Temperature,
	}

	output, err := r.dispatcher.Dispatch(ctx, req)
	if err != nil {
		if !isPreExecution(err) {
			r.log.Append(history.RunRecord{
				Component: runOpts.Component,
				Agent:     def.Name,
				Model:     runOpts.Model,
				TokensEst: history.EstimateTokens(userPrompt),
				OK:        false,
				Meta:      map[string]string{"agent_id": agentID},
			})
		}
		r.logger.Error("agent run failed", "agent_id", agentID, "model", runOpts.Model, "error", err.Error())
		return "", err
	}

	r.log.Append(history.RunRecord{
		Component: runOpts.Component,
		Agent:     def.Name,
		Model:     runOpts.Model,
		TokensEst: history.EstimateTokens(userPrompt + output),
		OK:        true,
		Meta:      map[string]string{"agent_id": agentID},
	})
	return output, nil
}

// joinPrompt joins the instruction with the input under a blank line.
func joinPrompt(prompt, input string) string {
	prompt = strings.TrimSpace(prompt)
	input = strings.TrimSpace(input)
	switch {
	case prompt == "":
		return input
	case input == "":
		return prompt
	default:
		return prompt + "\n\n" + input
	}
}

func isPreExecution(err error) bool {
	var unsupported *provider.UnsupportedModelError
	var missing *provider.MissingCredentialError
	return errors.As(err, &unsupported) || errors.As(err, &missing)
}
