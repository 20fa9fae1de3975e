package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "ASSIGNED"
	TaskStatusSubmitted TaskStatus = "SUBMITTED"
	TaskStatusApproved  TaskStatus = "APPROVED"
	TaskStatusRejected  TaskStatus = "REJECTED"
)

// IsValid reports whether s is one of the four workflow statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusSubmitted, TaskStatusApproved, TaskStatusRejected:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityNormal TaskPriority = "NORMAL"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is the unit of work moving through the ASSIGNED -> SUBMITTED ->
// APPROVED/REJECTED workflow. CreatorID never changes after creation and
// ReviewerID stays nil until the first approve or reject.
type Task struct {
	ID              uint64                      `gorm:"primarykey" json:"id"`
	Title           string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description     string                      `gorm:"type:text" json:"description"`
	Status          TaskStatus                  `gorm:"type:varchar(20);not null;default:'ASSIGNED'" json:"status"`
	Priority        TaskPriority                `gorm:"type:varchar(20);not null;default:'NORMAL'" json:"priority"`
	DueDate         *time.Time                  `json:"due_date"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	RejectionReason *string                     `gorm:"type:text" json:"rejection_reason"`
	CreatorID       uint64                      `gorm:"not null" json:"creator_id"`
	AssigneeID      uint64                      `gorm:"not null" json:"assignee_id"`
	ReviewerID      *uint64                     `json:"reviewer_id"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`

	// Relations
	Creator   User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee  User            `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Reviewer  *User           `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Checklist []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklist,omitempty"`
	Comments  []Comment       `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
