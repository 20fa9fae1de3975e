package workflow

// Action is an intent a principal presents against a task.
type Action string

const (
	// ActionAssign creates a new task and assigns it.
	ActionAssign Action = "assign"
	// ActionSubmit hands an assigned or rejected task in for review.
	ActionSubmit Action = "submit"
	// ActionApprove accepts a submitted task.
	ActionApprove Action = "approve"
	// ActionReject sends a submitted task back with a reason.
	ActionReject Action = "reject"
	// ActionComment appends to the task's activity log.
	ActionComment Action = "comment"
	// ActionAddChecklistItem appends a checklist item.
	ActionAddChecklistItem Action = "add_checklist_item"
	// ActionToggleChecklistItem flips a checklist item's completion.
	ActionToggleChecklistItem Action = "toggle_checklist_item"
)
