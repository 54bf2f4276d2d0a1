package models

// Priority is a fixed severity label referenced by tasks. Levels ascend in
// severity: Low=1 ... Urgent=4.
type Priority struct {
	ID    int    `json:"priority_id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CreatePriorityRequest represents an admin priority creation request body
type CreatePriorityRequest struct {
	Name  string `json:"name"`
	Level *int   `json:"level"`
}

// UpdatePriorityRequest represents a partial priority update. Nil fields are
// left untouched.
type UpdatePriorityRequest struct {
	Name  *string `json:"name"`
	Level *int    `json:"level"`
}
