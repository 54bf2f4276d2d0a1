package models

import "time"

// List represents a named container of tasks owned by exactly one user
type List struct {
	ID          int       `json:"list_id"`
	UserID      int       `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListWithCounts is a list row augmented with task aggregates for the
// list-all view
type ListWithCounts struct {
	List
	TotalTasks   int `json:"total_tasks"`
	PendingTasks int `json:"pending_tasks"`
}

// ListWithTasks is the list-all view with each list's tasks embedded
type ListWithTasks struct {
	ListWithCounts
	Tasks []Task `json:"tasks"`
}

// ListDetail is a single list with its tasks embedded
type ListDetail struct {
	List
	Tasks []Task `json:"tasks"`
}

// CreateListRequest represents a list creation request body
type CreateListRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateListRequest represents a partial list update. Nil fields are left
// untouched.
type UpdateListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
