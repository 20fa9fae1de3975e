package workflow

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
	"github.com/ksuda/task-workflow-api/internal/models"
)

// State constants for statekit integration. These must remain untyped
// string constants for statekit.StateID compatibility; they mirror
// models.TaskStatus values one to one.
const (
	stateAssigned  = "ASSIGNED"
	stateSubmitted = "SUBMITTED"
	stateApproved  = "APPROVED"
	stateRejected  = "REJECTED"
)

// Event names for statekit integration; they mirror the submit,
// approve, and reject actions.
const (
	eventSubmit  = "submit"
	eventApprove = "approve"
	eventReject  = "reject"
)

type lifecycleContext struct{}

// newLifecycle builds the workflow machine with the task's current
// status as the initial state. The machine is cheap to construct, so a
// fresh one is built per transition attempt.
func newLifecycle(current models.TaskStatus) (*statekit.Interpreter[lifecycleContext], error) {
	builder := statekit.NewMachine[lifecycleContext]("task-workflow").
		WithInitial(statekit.StateID(current)).
		WithContext(lifecycleContext{})

	builder.State(stateAssigned).
		On(eventSubmit).Target(stateSubmitted).
		Done()

	builder.State(stateSubmitted).
		On(eventApprove).Target(stateApproved).
		On(eventReject).Target(stateRejected).
		Done()

	builder.State(stateRejected).
		On(eventSubmit).Target(stateSubmitted).
		Done()

	// APPROVED is terminal: no outgoing edges.
	builder.State(stateApproved).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return interpreter, nil
}

// NextStatus returns the status a task in the given status moves to
// when action is applied. If the action is not legal from that status
// the returned error has KindInvalidTransition and the status is
// unchanged.
func NextStatus(current models.TaskStatus, action Action) (models.TaskStatus, error) {
	if !current.IsValid() {
		return current, NewInvalidTransitionError(fmt.Sprintf("unknown task status %q", current))
	}

	interpreter, err := newLifecycle(current)
	if err != nil {
		return current, err
	}

	interpreter.Send(statekit.Event{Type: statekit.EventType(action)})

	next := models.TaskStatus(interpreter.State().Value)
	if next == current {
		// statekit leaves the state untouched when no transition
		// matches the event.
		return current, NewInvalidTransitionError(
			fmt.Sprintf("cannot %s a task in status %s", action, current))
	}

	return next, nil
}
