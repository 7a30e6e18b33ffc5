package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event stream closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestEngine_RunStepEmitsStartAndFinish(t *testing.T) {
	wf, log := newTestWorkflow(echoDispatcher())
	e := NewEngine(wf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)

	require.NoError(t, e.Submit(SetInputCmd{Text: "draft"}))
	require.NoError(t, e.Submit(RunStepCmd{Index: 0}))

	ev := nextEvent(t, e.Events())
	assert.Equal(t, EventInputChanged, ev.Type)

	ev = nextEvent(t, e.Events())
	assert.Equal(t, EventStepStarted, ev.Type)
	assert.Equal(t, StatusThinking, ev.Status)

	ev = nextEvent(t, e.Events())
	assert.Equal(t, EventStepFinished, ev.Type)
	assert.Equal(t, StatusDone, ev.Status)
	assert.Empty(t, ev.Err)

	assert.Equal(t, 1, log.Len())
	step, _ := wf.Step(0)
	assert.Equal(t, "echo(draft)", step.Output)
}

func TestEngine_RunStepFailureCarriesError(t *testing.T) {
	wf, _ := newTestWorkflow(failingDispatcher(assert.AnError))
	e := NewEngine(wf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)

	require.NoError(t, e.Submit(RunStepCmd{Index: 0}))

	_ = nextEvent(t, e.Events()) // step_started
	ev := nextEvent(t, e.Events())
	assert.Equal(t, EventStepFinished, ev.Type)
	assert.Equal(t, StatusError, ev.Status)
	assert.NotEmpty(t, ev.Err)
}

func TestEngine_StructuralCommands(t *testing.T) {
	wf, _ := newTestWorkflow(echoDispatcher())
	e := NewEngine(wf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)

	require.NoError(t, e.Submit(AppendStepCmd{AgentID: "polisher"}))
	ev := nextEvent(t, e.Events())
	assert.Equal(t, EventStepsChanged, ev.Type)
	assert.Equal(t, 1, ev.Index)

	// A rejected append emits nothing; the next accepted command's event is
	// the next thing on the stream.
	require.NoError(t, e.Submit(AppendStepCmd{AgentID: "no_such_agent"}))
	require.NoError(t, e.Submit(EditOutputCmd{Index: 0, Text: "edited"}))
	ev = nextEvent(t, e.Events())
	assert.Equal(t, EventInputChanged, ev.Type)
	assert.Equal(t, 0, ev.Index)

	require.NoError(t, e.Submit(RemoveLastStepCmd{}))
	ev = nextEvent(t, e.Events())
	assert.Equal(t, EventStepsChanged, ev.Type)
	assert.Equal(t, 1, wf.Len())

	require.NoError(t, e.Submit(LoadDefaultsCmd{}))
	ev = nextEvent(t, e.Events())
	assert.Equal(t, EventStepsChanged, ev.Type)
	assert.Equal(t, 2, wf.Len())
}

func TestEngine_CancelClosesEventsAndRejectsSubmit(t *testing.T) {
	wf, _ := newTestWorkflow(echoDispatcher())
	e := NewEngine(wf)

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)
	cancel()

	select {
	case _, ok := <-e.Events():
		assert.False(t, ok, "event stream must close on shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("event stream did not close")
	}

	// Every submit after shutdown is rejected; none may land in the buffer
	// and report success.
	for i := 0; i < 200; i++ {
		require.ErrorIs(t, e.Submit(RunStepCmd{Index: 0}), context.Canceled)
	}
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	wf, _ := newTestWorkflow(echoDispatcher())
	e := NewEngine(wf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)
	e.Start(ctx)

	require.NoError(t, e.Submit(SetInputCmd{Text: "once"}))
	ev := nextEvent(t, e.Events())
	assert.Equal(t, EventInputChanged, ev.Type)
	assert.Equal(t, "once", wf.Input())
}
