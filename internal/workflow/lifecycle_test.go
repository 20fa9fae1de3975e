package workflow

import (
	"testing"

	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_LegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current models.TaskStatus
		action  Action
		want    models.TaskStatus
	}{
		{"submit from assigned", models.TaskStatusAssigned, ActionSubmit, models.TaskStatusSubmitted},
		{"submit from rejected", models.TaskStatusRejected, ActionSubmit, models.TaskStatusSubmitted},
		{"approve from submitted", models.TaskStatusSubmitted, ActionApprove, models.TaskStatusApproved},
		{"reject from submitted", models.TaskStatusSubmitted, ActionReject, models.TaskStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current models.TaskStatus
		action  Action
	}{
		{"approve from assigned", models.TaskStatusAssigned, ActionApprove},
		{"reject from assigned", models.TaskStatusAssigned, ActionReject},
		{"submit from submitted", models.TaskStatusSubmitted, ActionSubmit},
		{"submit from approved", models.TaskStatusApproved, ActionSubmit},
		{"approve from approved", models.TaskStatusApproved, ActionApprove},
		{"reject from approved", models.TaskStatusApproved, ActionReject},
		{"approve from rejected", models.TaskStatusRejected, ActionApprove},
		{"reject from rejected", models.TaskStatusRejected, ActionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action)
			require.Error(t, err)
			assert.Equal(t, KindInvalidTransition, KindOf(err))
			// status is reported unchanged on failure
			assert.Equal(t, tt.current, got)
		})
	}
}

func TestNextStatus_UnknownStatus(t *testing.T) {
	_, err := NextStatus(models.TaskStatus("DRAFT"), ActionSubmit)
	require.Error(t, err)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
}
