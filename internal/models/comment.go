package models

import "time"

const (
	SampleCommentID     = "sample_comm"
	SampleCommentAuthor = "You"
	UnknownAuthor       = "Unknown"
)

// Comment is an append-only remark on a recipe.
type Comment struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	UserID    string    `json:"user_id,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
