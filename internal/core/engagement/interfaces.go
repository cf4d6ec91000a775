package engagement

import "context"

// Repository defines the data access interface for post reactions
type Repository interface {
	// Mutate loads the reaction sets of a post while holding a lock on the post,
	// calls fn, and persists whatever fn changed in the same transaction.
	// If fn returns an error nothing is persisted and that error is returned.
	// Returns ErrPostNotFound if the post does not exist.
	Mutate(ctx context.Context, postID int64, fn func(r *Reactions) error) (*Reactions, error)

	// Get returns the current reaction sets of a post
	Get(ctx context.Context, postID int64) (*Reactions, error)
}

// Service defines the like/unlike operations
type Service interface {
	// Like adds userID to the post's likes and removes it from unlikes.
	// Fails with an AlreadyInStateError if the user already likes the post.
	Like(ctx context.Context, postID, userID int64) (*Result, error)

	// Unlike adds userID to the post's unlikes and removes it from likes.
	// Fails with an AlreadyInStateError if the user already unlikes the post.
	Unlike(ctx context.Context, postID, userID int64) (*Result, error)

	// Reactions returns the reaction sets of a post
	Reactions(ctx context.Context, postID int64) (*Reactions, error)
}
