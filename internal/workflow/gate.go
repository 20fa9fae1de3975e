package workflow

import (
	"fmt"

	"github.com/ksuda/task-workflow-api/internal/models"
)

// Gate is the single source of truth for who may do what. Identity and
// role checks live here; whether the task's current status permits the
// action is the lifecycle machine's concern.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// reviewRoles lists the roles allowed to create tasks and to review
// submissions. Declared once so every caller shares the same rule.
var reviewRoles = map[Action][]models.Role{
	ActionAssign:  {models.RoleManager, models.RoleDirector},
	ActionApprove: {models.RoleManager, models.RoleDirector},
	ActionReject:  {models.RoleManager, models.RoleDirector},
}

// Authorize decides whether actor may perform action on task. For
// ActionAssign the task is the one being created (may be nil). A nil
// return means permitted; otherwise the error has KindDenied.
func (g *Gate) Authorize(actor *models.User, task *models.Task, action Action) error {
	switch action {
	case ActionAssign, ActionApprove, ActionReject:
		for _, role := range reviewRoles[action] {
			if actor.Role == role {
				return nil
			}
		}
		return NewDeniedError(fmt.Sprintf("role %s may not %s tasks", actor.Role, action))

	case ActionSubmit:
		if actor.ID != task.AssigneeID {
			return NewDeniedError("only the assignee can submit this task")
		}
		return nil

	case ActionComment, ActionAddChecklistItem, ActionToggleChecklistItem:
		// Any authenticated principal; existence of the task is
		// checked by the caller before mutation.
		return nil
	}

	return NewDeniedError(fmt.Sprintf("unknown action %q", action))
}
