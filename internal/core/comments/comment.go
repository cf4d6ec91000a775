package comments

import (
	"time"

	"Scribe/internal/core/users"
)

// State is the moderation state of a comment.
// Blocking a comment deletes it, so there is no persisted blocked state.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
)

// Comment represents a comment on a post.
// PostID and AuthorID never change after creation.
type Comment struct {
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	Author     *users.User `json:"author" db:"-"`
	PostTitle  string      `json:"post_title" db:"-"`
	Content    string      `json:"content" db:"content"`
	ID         int64       `json:"id" db:"id"`
	PostID     int64       `json:"post" db:"post_id"`
	AuthorID   int64       `json:"-" db:"author_id"`
	IsApproved bool        `json:"is_approved" db:"is_approved"`
}

// State returns the moderation state derived from IsApproved
func (c *Comment) State() State {
	if c.IsApproved {
		return StateApproved
	}
	return StatePending
}

// ModerationResult is returned by approve and block
type ModerationResult struct {
	Status    string `json:"status"`
	CommentID int64  `json:"comment_id"`
}

// ListFilter narrows a comment listing. Nil fields do not filter.
type ListFilter struct {
	PostID   *int64
	Approved *bool
}
