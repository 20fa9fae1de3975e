package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ksuda/task-workflow-api/internal/locker"
	"github.com/ksuda/task-workflow-api/internal/logger"
	"github.com/ksuda/task-workflow-api/internal/models"
	"github.com/ksuda/task-workflow-api/internal/repository"
	"github.com/ksuda/task-workflow-api/internal/utils"
	"github.com/ksuda/task-workflow-api/internal/workflow"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// taskPreloads is the full relation set returned from every operation
// that hands a task back to the caller.
var taskPreloads = []string{"Creator", "Assignee", "Reviewer", "Checklist", "Comments", "Comments.Author"}

// TaskService owns the task workflow: lifecycle transitions, the
// authorization gate, and the comment/checklist consistency rules.
// Every mutation on a task runs inside that task's critical section so
// the read-validate-write sequence is atomic per task id.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	gate     *workflow.Gate
	locks    *locker.KeyedMutex
	log      *logger.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, log *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		gate:     workflow.NewGate(),
		locks:    locker.NewKeyedMutex(),
		log:      log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title            string
	Description      string
	AssigneeUsername string
	Priority         models.TaskPriority
	DueDate          *time.Time
	Tags             []string
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssigneeUsername string
	Status           *models.TaskStatus
	Priority         *models.TaskPriority
	Pagination       utils.PaginationParams
}

// CreateTask creates a task in status ASSIGNED. Only managers and
// directors may create tasks.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if err := s.gate.Authorize(actor, nil, workflow.ActionAssign); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, workflow.NewValidationError("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityNormal
	}
	if !priority.IsValid() {
		return nil, workflow.NewValidationError(fmt.Sprintf("unknown priority %q", priority))
	}

	assignee, err := s.userRepo.FindByUsername(strings.TrimSpace(input.AssigneeUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewValidationError("assignee does not exist")
		}
		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}

	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.TaskStatusAssigned,
		Priority:    priority,
		DueDate:     input.DueDate,
		Tags:        datatypes.NewJSONSlice(uniqueTags(input.Tags)),
		CreatorID:   actor.ID,
		AssigneeID:  assignee.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.Info("task created",
		"task_id", task.ID,
		"creator", actor.Username,
		"assignee", assignee.Username,
		"priority", priority,
	)

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// SubmitTask hands an assigned or rejected task in for review. Only the
// assignee may submit; a prior rejection reason is cleared.
func (s *TaskService) SubmitTask(actor *models.User, taskID uint64) (*models.Task, error) {
	return s.transition(actor, taskID, workflow.ActionSubmit, func(task *models.Task) {
		task.RejectionReason = nil
	})
}

// ApproveTask accepts a submitted task and records the reviewer.
// APPROVED is terminal.
func (s *TaskService) ApproveTask(actor *models.User, taskID uint64) (*models.Task, error) {
	return s.transition(actor, taskID, workflow.ActionApprove, func(task *models.Task) {
		reviewerID := actor.ID
		task.ReviewerID = &reviewerID
	})
}

// RejectTask sends a submitted task back to the assignee with a
// required reason.
func (s *TaskService) RejectTask(actor *models.User, taskID uint64, reason string) (*models.Task, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, workflow.NewValidationError("rejection reason is required")
	}

	return s.transition(actor, taskID, workflow.ActionReject, func(task *models.Task) {
		reviewerID := actor.ID
		task.ReviewerID = &reviewerID
		task.RejectionReason = &reason
	})
}

// transition runs the shared authorize -> step -> mutate -> save
// sequence inside the task's critical section.
func (s *TaskService) transition(actor *models.User, taskID uint64, action workflow.Action, apply func(*models.Task)) (*models.Task, error) {
	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Authorize(actor, task, action); err != nil {
		return nil, err
	}

	next, err := workflow.NextStatus(task.Status, action)
	if err != nil {
		return nil, err
	}

	from := task.Status
	task.Status = next
	apply(task)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.log.Info("task transitioned",
		"task_id", task.ID,
		"action", action,
		"actor", actor.Username,
		"from", from,
		"to", next,
	)

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// AddComment appends a comment to the task's activity log. Comments are
// immutable once created.
func (s *TaskService) AddComment(actor *models.User, taskID uint64, body string) (*models.Comment, error) {
	if err := s.gate.Authorize(actor, nil, workflow.ActionComment); err != nil {
		return nil, err
	}

	if strings.TrimSpace(body) == "" {
		return nil, workflow.NewValidationError("comment body is required")
	}

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	if _, err := s.findTask(taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:    taskID,
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	comment.Author = *actor
	return comment, nil
}

// ListComments returns a task's comments in insertion order.
func (s *TaskService) ListComments(taskID uint64) ([]models.Comment, error) {
	if _, err := s.findTask(taskID); err != nil {
		return nil, err
	}

	comments, err := s.taskRepo.ListComments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// AddChecklistItem appends an uncompleted item to the end of the task's
// checklist.
func (s *TaskService) AddChecklistItem(actor *models.User, taskID uint64, text string) (*models.ChecklistItem, error) {
	if err := s.gate.Authorize(actor, nil, workflow.ActionAddChecklistItem); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, workflow.NewValidationError("checklist item text is required")
	}

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	if _, err := s.findTask(taskID); err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{
		TaskID:      taskID,
		Text:        text,
		IsCompleted: false,
	}

	if err := s.taskRepo.AddChecklistItem(item); err != nil {
		return nil, fmt.Errorf("failed to add checklist item: %w", err)
	}

	return item, nil
}

// ToggleChecklistItem flips a checklist item's completion flag. Toggling
// twice restores the original state.
func (s *TaskService) ToggleChecklistItem(actor *models.User, taskID, itemID uint64) (*models.ChecklistItem, error) {
	if err := s.gate.Authorize(actor, nil, workflow.ActionToggleChecklistItem); err != nil {
		return nil, err
	}

	s.locks.Lock(taskID)
	defer s.locks.Unlock(taskID)

	if _, err := s.findTask(taskID); err != nil {
		return nil, err
	}

	item, err := s.taskRepo.FindChecklistItem(taskID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("checklist item not found")
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	item.IsCompleted = !item.IsCompleted

	if err := s.taskRepo.UpdateChecklistItem(item); err != nil {
		return nil, fmt.Errorf("failed to toggle checklist item: %w", err)
	}

	return item, nil
}

// ListTasks returns tasks matching the filters in insertion order.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:     input.Status,
		Priority:   input.Priority,
		Pagination: input.Pagination,
	}

	if username := strings.TrimSpace(input.AssigneeUsername); username != "" {
		assignee, err := s.userRepo.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Task{}, 0, nil
			}
			return nil, 0, fmt.Errorf("failed to look up assignee: %w", err)
		}
		filter.AssigneeID = &assignee.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its full relation set.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// findTask loads the bare task record, mapping a missing row to the
// workflow NotFound kind.
func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// uniqueTags trims, de-duplicates, and drops empty tags while keeping
// first-seen order.
func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	return result
}
