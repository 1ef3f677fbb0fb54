package domain

import (
	"errors"
	"time"
)

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskCategory classifies the kind of request a task represents.
type TaskCategory string

const (
	CategoryBrandCollaboration TaskCategory = "brand-collaboration"
	CategoryContentRequest     TaskCategory = "content-request"
	CategoryCrisisManagement   TaskCategory = "crisis-management"
	CategoryGeneralInquiry     TaskCategory = "general-inquiry"
	// CategoryEmail is reserved for tasks created through the email importer;
	// it is not accepted on manual creation.
	CategoryEmail TaskCategory = "email"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidPriority = errors.New("priority must be one of: high, medium, low")
var ErrInvalidCategory = errors.New("invalid category")

// IsValidPriority reports whether p is a member of the closed priority set.
func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// IsValidCategory reports whether c is a category accepted on manual
// creation. CategoryEmail is excluded; only the importer assigns it.
func IsValidCategory(c TaskCategory) bool {
	switch c {
	case CategoryBrandCollaboration, CategoryContentRequest, CategoryCrisisManagement, CategoryGeneralInquiry:
		return true
	}
	return false
}

// Task is a unit of work derived from an email or entered manually.
// ID, UserID and CreatedAt are immutable after creation.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	EmailFrom   string       `json:"emailFrom"`
	UserID      string       `json:"userId"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// TaskUpdate is a partial task update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Category    *TaskCategory
	EmailFrom   *string
	Completed   *bool
}

// TaskStats are per-owner aggregate counts. Pending is always
// Total - Completed.
type TaskStats struct {
	Total     int `json:"total"`
	High      int `json:"high"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
