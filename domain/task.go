package domain

import "time"

// Task is a user-owned todo item. OwnerID is stamped once at creation
// from the verified request identity and is never serialized outward.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) OwnedBy(identity string) bool {
	return t != nil && identity != "" && t.OwnerID == identity
}
