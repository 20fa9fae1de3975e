package models

import "time"

// ChecklistItem is a sub-item of a task. Items are appended in insertion
// order, toggled independently, and never deleted.
type ChecklistItem struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	Text        string    `gorm:"type:varchar(255);not null" json:"text"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
