package repository

import (
	"github.com/ksuda/task-workflow-api/internal/database"
	"github.com/ksuda/task-workflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		switch p {
		case "Checklist", "Comments":
			// insertion order is part of the contract for both lists
			query = query.Preload(p, func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
		default:
			query = query.Preload(p)
		}
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination. Results come back
// in insertion order; grouping by status is left to the caller.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.id ASC")

	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.
		Preload("Creator").
		Preload("Assignee").
		Preload("Reviewer").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists the full task record
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// AddComment appends a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments returns a task's comments in insertion order
func (r *GormTaskRepository) ListComments(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// AddChecklistItem appends a checklist item to a task
func (r *GormTaskRepository) AddChecklistItem(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// FindChecklistItem finds a checklist item belonging to a task
func (r *GormTaskRepository) FindChecklistItem(taskID, itemID uint64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.
		Where("task_id = ? AND id = ?", taskID, itemID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateChecklistItem persists a checklist item
func (r *GormTaskRepository) UpdateChecklistItem(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}
