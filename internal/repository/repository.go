package repository

import (
	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/ksuda/task-workflow-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists the full task record
	Update(task *models.Task) error

	// AddComment appends a comment to a task
	AddComment(comment *models.Comment) error

	// ListComments returns a task's comments in insertion order
	ListComments(taskID uint64) ([]models.Comment, error)

	// AddChecklistItem appends a checklist item to a task
	AddChecklistItem(item *models.ChecklistItem) error

	// FindChecklistItem finds a checklist item belonging to a task
	FindChecklistItem(taskID, itemID uint64) (*models.ChecklistItem, error)

	// UpdateChecklistItem persists a checklist item
	UpdateChecklistItem(item *models.ChecklistItem) error
}

// TaskFilter holds filtering and pagination options for listing tasks
type TaskFilter struct {
	AssigneeID *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
