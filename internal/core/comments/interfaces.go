package comments

import "context"

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts a comment and returns it with ID, timestamps and author hydrated.
	// Returns ErrPostNotFound if the post does not exist.
	Create(ctx context.Context, comment *Comment) (*Comment, error)

	// GetByID retrieves a comment with its author and post title
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// SetApproval sets is_approved in a single statement and returns the updated comment.
	// Returns ErrCommentNotFound if the comment does not exist.
	SetApproval(ctx context.Context, id int64, approved bool) (*Comment, error)

	// Delete removes a comment permanently and returns its ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id int64) (int64, error)

	// List returns comments matching filter, oldest first
	List(ctx context.Context, filter ListFilter) ([]*Comment, error)
}

// Service defines the comment moderation queue
type Service interface {
	// Submit validates content and creates a pending comment on a post
	Submit(ctx context.Context, postID, authorID int64, content string) (*Comment, error)

	// Approve marks a comment visible. Approving an approved comment succeeds.
	Approve(ctx context.Context, commentID int64) (*ModerationResult, error)

	// Block deletes a comment permanently
	Block(ctx context.Context, commentID int64) (*ModerationResult, error)

	// ListVisible returns the approved comments of a post
	ListVisible(ctx context.Context, postID int64) ([]*Comment, error)

	// ListAll returns comments across all posts matching filter.
	// An empty filter returns every comment regardless of state.
	ListAll(ctx context.Context, filter ListFilter) ([]*Comment, error)
}
