// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content is a blog/news entry managed from the dashboard's blog section.
// Body is stored sanitized (rich text from the editor passes through
// htmlsanitize before it reaches the store).
type Content struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title      string              `bson:"title" json:"title"`
	TitleCI    string              `bson:"title_ci" json:"-"`
	Body       string              `bson:"body" json:"body"`
	Tags       []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Status     string              `bson:"status" json:"status"` // draft | published
	AuthorID   *primitive.ObjectID `bson:"author_id,omitempty" json:"author_id,omitempty"`
	AuthorName string              `bson:"author_name,omitempty" json:"author_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Content status identifiers.
const (
	ContentDraft     = "draft"
	ContentPublished = "published"
)
