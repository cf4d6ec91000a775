package posts

import (
	"context"
	"log/slog"

	"Scribe/internal/metrics"
)

// ReadCounter records views of a post.
// The increment is a single atomic statement, so concurrent views never lose a count.
type ReadCounter struct {
	repo   Repository
	logger *slog.Logger
}

// NewReadCounter creates a read counter backed by repo
func NewReadCounter(repo Repository, logger *slog.Logger) *ReadCounter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadCounter{repo: repo, logger: logger}
}

// RecordView increments the read count of a post and returns the post.
// The increment is persisted before the post is loaded. Under concurrent views the
// returned snapshot may already include increments made by other callers.
func (c *ReadCounter) RecordView(ctx context.Context, id int64) (*Post, error) {
	count, err := c.repo.IncrementReadCount(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.ObservePostView()

	post, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// never report fewer reads than this call produced
	if post.ReadCount < count {
		post.ReadCount = count
	}

	c.logger.Debug("post viewed", "post_id", id, "read_count", post.ReadCount)
	return post, nil
}
