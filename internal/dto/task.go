package dto

import (
	"time"

	"github.com/ksuda/task-workflow-api/internal/models"
)

// ChecklistItemDTO represents a checklist item in API responses
type ChecklistItemDTO struct {
	ID          uint64 `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Body      string    `json:"body"`
	Author    *UserDTO  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	DueDate         *time.Time          `json:"due_date"`
	Tags            []string            `json:"tags"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	Creator         *UserDTO            `json:"creator,omitempty"`
	Assignee        *UserDTO            `json:"assignee,omitempty"`
	Reviewer        *UserDTO            `json:"reviewer,omitempty"`
	Checklist       []ChecklistItemDTO  `json:"checklist,omitempty"`
	Comments        []CommentDTO        `json:"comments,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToChecklistItemDTO converts a ChecklistItem model to ChecklistItemDTO
func ToChecklistItemDTO(item models.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:          item.ID,
		Text:        item.Text,
		IsCompleted: item.IsCompleted,
	}
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		Tags:            []string(task.Tags),
		RejectionReason: task.RejectionReason,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	// Include relations only when preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}
	if task.Assignee.ID != 0 {
		assignee := ToUserDTO(task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Reviewer != nil && task.Reviewer.ID != 0 {
		reviewer := ToUserDTO(*task.Reviewer)
		dto.Reviewer = &reviewer
	}

	if len(task.Checklist) > 0 {
		dto.Checklist = make([]ChecklistItemDTO, len(task.Checklist))
		for i, item := range task.Checklist {
			dto.Checklist[i] = ToChecklistItemDTO(item)
		}
	}

	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
