package workflow

import (
	"testing"

	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func user(id uint64, role models.Role) *models.User {
	return &models.User{ID: id, Username: "user", Role: role}
}

func TestGate_Assign(t *testing.T) {
	gate := NewGate()

	assert.NoError(t, gate.Authorize(user(1, models.RoleManager), nil, ActionAssign))
	assert.NoError(t, gate.Authorize(user(1, models.RoleDirector), nil, ActionAssign))

	err := gate.Authorize(user(1, models.RoleEmployee), nil, ActionAssign)
	assert.Equal(t, KindDenied, KindOf(err))
}

func TestGate_Submit_OnlyAssignee(t *testing.T) {
	gate := NewGate()
	task := &models.Task{ID: 7, AssigneeID: 2}

	assert.NoError(t, gate.Authorize(user(2, models.RoleEmployee), task, ActionSubmit))

	// role does not matter for submit, identity does
	err := gate.Authorize(user(3, models.RoleDirector), task, ActionSubmit)
	assert.Equal(t, KindDenied, KindOf(err))
}

func TestGate_Review(t *testing.T) {
	gate := NewGate()
	task := &models.Task{ID: 7, AssigneeID: 2, Status: models.TaskStatusSubmitted}

	for _, action := range []Action{ActionApprove, ActionReject} {
		assert.NoError(t, gate.Authorize(user(1, models.RoleManager), task, action))
		assert.NoError(t, gate.Authorize(user(1, models.RoleDirector), task, action))

		err := gate.Authorize(user(2, models.RoleEmployee), task, action)
		assert.Equal(t, KindDenied, KindOf(err))
	}
}

func TestGate_SubEntityActions_AnyRole(t *testing.T) {
	gate := NewGate()
	task := &models.Task{ID: 7, AssigneeID: 2}

	for _, action := range []Action{ActionComment, ActionAddChecklistItem, ActionToggleChecklistItem} {
		for _, role := range []models.Role{models.RoleEmployee, models.RoleManager, models.RoleDirector} {
			assert.NoError(t, gate.Authorize(user(9, role), task, action))
		}
	}
}

func TestGate_UnknownAction(t *testing.T) {
	gate := NewGate()
	err := gate.Authorize(user(1, models.RoleDirector), nil, Action("archive"))
	assert.Equal(t, KindDenied, KindOf(err))
}
