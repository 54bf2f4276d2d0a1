package models

import "time"

// Task represents a unit of work belonging to exactly one list. Ownership is
// never stored on the task itself; it always resolves through the parent
// list.
type Task struct {
	ID          int        `json:"task_id"`
	ListID      int        `json:"list_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	PriorityID  *int       `json:"priority_id"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest represents a task creation request body.
//
// ListID and PriorityID are decoded as `any` because clients send them both
// as JSON numbers and as strings; IsCompleted is not accepted on create.
type CreateTaskRequest struct {
	ListID      any     `json:"list_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	PriorityID  any     `json:"priority_id"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskRequest represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskRequest struct {
	ListID      any     `json:"list_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriorityID  any     `json:"priority_id"`
	DueDate     *string `json:"due_date"`
	IsCompleted any     `json:"is_completed"`
}

// UpdateTaskStatusRequest represents a completion toggle request body
type UpdateTaskStatusRequest struct {
	IsCompleted any `json:"is_completed"`
}
