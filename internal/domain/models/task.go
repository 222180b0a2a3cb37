// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is an operational to-do item assignable to a console user.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	AssigneeID  *primitive.ObjectID `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	Status      string              `bson:"status" json:"status"` // open | in-progress | done
	DueAt       *time.Time          `bson:"due_at,omitempty" json:"due_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Task status identifiers.
const (
	TaskOpen       = "open"
	TaskInProgress = "in-progress"
	TaskDone       = "done"
)

// IsValidTaskStatus checks if a value is a valid task status.
func IsValidTaskStatus(value string) bool {
	switch value {
	case TaskOpen, TaskInProgress, TaskDone:
		return true
	}
	return false
}
