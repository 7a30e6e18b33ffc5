package workflow

import (
	"context"
	"sync"

	"github.com/stackfield/agentstudio/logging"
)

// Command is a request submitted to the Engine's single consuming goroutine.
type Command interface{ isCommand() }

// RunStepCmd runs one step. Advance additionally moves the cursor to the
// next step after a success, without executing it.
type RunStepCmd struct {
	Index   int
	Advance bool
}

// AppendStepCmd appends a step configured from the given agent's defaults.
type AppendStepCmd struct {
	AgentID string
}

// RemoveLastStepCmd removes the last step (no-op when one step remains).
type RemoveLastStepCmd struct{}

// SetInputCmd replaces the global workflow input.
type SetInputCmd struct {
	Text string
}

// EditOutputCmd hand-edits a step's output.
type EditOutputCmd struct {
	Index int
	Text  string
}

// LoadDefaultsCmd replaces the pipeline with the recommended template.
type LoadDefaultsCmd struct{}

func (RunStepCmd) isCommand()        {}
func (AppendStepCmd) isCommand()     {}
func (RemoveLastStepCmd) isCommand() {}
func (SetInputCmd) isCommand()       {}
func (EditOutputCmd) isCommand()     {}
func (LoadDefaultsCmd) isCommand()   {}

// EventType classifies state-changed notifications emitted by the Engine.
type EventType string

const (
	// EventStepStarted fires when a step enters Thinking.
	EventStepStarted EventType = "step_started"
	// EventStepFinished fires when a run completes, successfully or not.
	EventStepFinished EventType = "step_finished"
	// EventStepsChanged fires when the step list shape changes.
	EventStepsChanged EventType = "steps_changed"
	// EventInputChanged fires when the global input or an output is edited.
	EventInputChanged EventType = "input_changed"
)

// Event is a state-changed notification. Index and Status are meaningful for
// step-scoped events; Err carries the surfaced failure message.
type Event struct {
	Type   EventType
	Index  int
	Status Status
	Err    string
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	// CommandBuffer sets the command channel capacity.
	CommandBuffer int
	// EventBuffer sets the event channel capacity. Consumers must drain
	// events; the engine blocks rather than drop state changes.
	EventBuffer int
	// Logger receives engine lifecycle diagnostics.
	Logger logging.Logger
}

// Engine owns a Workflow behind a command channel consumed by a single
// goroutine, emitting state-changed events a presentation layer subscribes
// to. The single consumer guarantees the one-outstanding-call execution
// model: no two steps ever run concurrently.
type Engine struct {
	wf     *Workflow
	cmds   chan Command
	events chan Event
	logger logging.Logger

	startOnce sync.Once
	done      chan struct{}
}

// NewEngine constructs an Engine over the given workflow.
func NewEngine(wf *Workflow, optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{CommandBuffer: 16, EventBuffer: 64, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		wf:     wf,
		cmds:   make(chan Command, opts.CommandBuffer),
		events: make(chan Event, opts.EventBuffer),
		done:   make(chan struct{}),
		logger: opts.Logger,
	}
}

// Workflow returns the engine's underlying workflow for read access.
func (e *Engine) Workflow() *Workflow { return e.wf }

// Events returns the state-changed event stream.
func (e *Engine) Events() <-chan Event { return e.events }

// Submit enqueues a command. It blocks when the command buffer is full and
// fails once the engine has stopped. A stopped engine always rejects: the
// shutdown check runs before the send, because a select would otherwise pick
// randomly between the closed done channel and the buffered command channel
// and silently drop the command into a channel nobody consumes.
func (e *Engine) Submit(cmd Command) error {
	select {
	case <-e.done:
		return context.Canceled
	default:
	}
	select {
	case <-e.done:
		return context.Canceled
	case e.cmds <- cmd:
	}
	// The loop may have stopped between the check and the send; a command
	// parked in the buffer at shutdown is rejected, not silently dropped.
	select {
	case <-e.done:
		return context.Canceled
	default:
		return nil
	}
}

// Start launches the consuming goroutine. It returns immediately; the loop
// runs until ctx is cancelled, then closes the event stream. Start is
// idempotent.
func (e *Engine) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		go e.loop(ctx)
	})
}

func (e *Engine) loop(ctx context.Context) {
	defer close(e.events)
	defer close(e.done)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmds:
			e.apply(ctx, cmd)
		}
	}
}

func (e *Engine) apply(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case RunStepCmd:
		e.emit(Event{Type: EventStepStarted, Index: c.Index, Status: StatusThinking})
		var err error
		if c.Advance {
			err = e.wf.RunStepAndAdvance(ctx, c.Index)
		} else {
			err = e.wf.RunStep(ctx, c.Index)
		}
		ev := Event{Type: EventStepFinished, Index: c.Index, Status: StatusDone}
		if err != nil {
			ev.Status = StatusError
			ev.Err = err.Error()
		}
		e.emit(ev)
	case AppendStepCmd:
		if err := e.wf.AppendStep(c.AgentID); err != nil {
			e.logger.Warn("append step rejected", "agent_id", c.AgentID, "error", err.Error())
			return
		}
		e.emit(Event{Type: EventStepsChanged, Index: e.wf.Len() - 1})
	case RemoveLastStepCmd:
		e.wf.RemoveLastStep()
		e.emit(Event{Type: EventStepsChanged, Index: e.wf.Len() - 1})
	case SetInputCmd:
		e.wf.SetInput(c.Text)
		e.emit(Event{Type: EventInputChanged, Index: 0})
	case EditOutputCmd:
		if err := e.wf.SetStepOutput(c.Index, c.Text); err != nil {
			e.logger.Warn("output edit rejected", "step", c.Index, "error", err.Error())
			return
		}
		e.emit(Event{Type: EventInputChanged, Index: c.Index})
	case LoadDefaultsCmd:
		if err := e.wf.LoadDefaults(); err != nil {
			e.logger.Warn("load defaults rejected", "error", err.Error())
			return
		}
		e.emit(Event{Type: EventStepsChanged, Index: 0})
	}
}

func (e *Engine) emit(ev Event) {
	e.events <- ev
}
