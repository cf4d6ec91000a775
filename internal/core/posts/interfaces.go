package posts

import (
	"context"

	"Scribe/internal/core/comments"
)

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates input, stores the optional image and persists the post
	CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error)

	// ListPosts returns every post, newest first. Does not count as a read.
	ListPosts(ctx context.Context) ([]*PostView, error)

	// ViewPost is the single-post detail fetch. It records one read before returning.
	ViewPost(ctx context.Context, id int64) (*PostView, error)

	// GetPost returns a post without recording a read.
	// Used for permission checks before updates and deletes.
	GetPost(ctx context.Context, id int64) (*Post, error)

	// UpdatePost applies a full or partial update. The author never changes.
	UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*PostView, error)

	// DeletePost removes a post together with its comments and reactions
	DeletePost(ctx context.Context, id int64) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a post and returns it with ID, timestamps and author hydrated.
	// Returns ErrAuthorNotFound if the author does not exist.
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID returns a post with author and reaction sets.
	// Returns ErrNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns every post, newest first
	List(ctx context.Context) ([]*Post, error)

	// Update writes title, content and image and bumps updated_at.
	// read_count is never written by Update.
	Update(ctx context.Context, post *Post) (*Post, error)

	// Delete removes a post and returns the deleted row
	Delete(ctx context.Context, id int64) (*Post, error)

	// IncrementReadCount adds one to read_count in a single statement and returns the new value
	IncrementReadCount(ctx context.Context, id int64) (int64, error)
}

// CommentLister supplies the approved comments embedded in a post view
type CommentLister interface {
	ListVisible(ctx context.Context, postID int64) ([]*comments.Comment, error)
}
