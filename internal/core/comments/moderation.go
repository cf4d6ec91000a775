package comments

import (
	"context"
	"log/slog"
	"strings"

	"Scribe/internal/metrics"
)

const (
	actionApprove = "approve"
	actionBlock   = "block"
)

// moderationQueue implements Service on top of a Repository
type moderationQueue struct {
	repo   Repository
	logger *slog.Logger
}

// NewModerationQueue creates the comment moderation service
func NewModerationQueue(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &moderationQueue{
		repo:   repo,
		logger: logger,
	}
}

// Submit creates a pending comment. The caller's role never changes the initial state.
func (q *moderationQueue) Submit(ctx context.Context, postID, authorID int64, content string) (*Comment, error) {
	if v := ValidateContent(content); v != nil {
		metrics.ObserveCommentSubmission(metrics.OutcomeRejected)
		q.logger.Info("comment rejected",
			"post_id", postID,
			"author_id", authorID,
			"rule", v.Rule)
		return nil, v
	}

	created, err := q.repo.Create(ctx, &Comment{
		PostID:     postID,
		AuthorID:   authorID,
		Content:    strings.TrimSpace(content),
		IsApproved: false,
	})
	if err != nil {
		if IsNotFound(err) {
			metrics.ObserveCommentSubmission(metrics.OutcomeNotFound)
			return nil, err
		}
		metrics.ObserveCommentSubmission(metrics.OutcomeError)
		q.logger.Error("failed to create comment",
			"error", err,
			"post_id", postID,
			"author_id", authorID)
		return nil, err
	}

	metrics.ObserveCommentSubmission(metrics.OutcomeOK)
	q.logger.Info("comment submitted",
		"comment_id", created.ID,
		"post_id", postID,
		"author_id", authorID)

	return created, nil
}

// Approve makes a comment visible to readers
func (q *moderationQueue) Approve(ctx context.Context, commentID int64) (*ModerationResult, error) {
	comment, err := q.repo.SetApproval(ctx, commentID, true)
	if err != nil {
		q.observeFailure(actionApprove, commentID, err)
		return nil, err
	}

	metrics.ObserveModeration(actionApprove, metrics.OutcomeOK)
	q.logger.Info("comment approved", "comment_id", comment.ID, "post_id", comment.PostID)

	return &ModerationResult{
		Status:    "approved",
		CommentID: comment.ID,
	}, nil
}

// Block removes a comment permanently
func (q *moderationQueue) Block(ctx context.Context, commentID int64) (*ModerationResult, error) {
	deletedID, err := q.repo.Delete(ctx, commentID)
	if err != nil {
		q.observeFailure(actionBlock, commentID, err)
		return nil, err
	}

	metrics.ObserveModeration(actionBlock, metrics.OutcomeOK)
	q.logger.Info("comment blocked", "comment_id", deletedID)

	return &ModerationResult{
		Status:    "blocked",
		CommentID: deletedID,
	}, nil
}

// ListVisible returns the approved comments of a post
func (q *moderationQueue) ListVisible(ctx context.Context, postID int64) ([]*Comment, error) {
	approved := true
	return q.repo.List(ctx, ListFilter{PostID: &postID, Approved: &approved})
}

// ListAll returns comments matching filter for moderators
func (q *moderationQueue) ListAll(ctx context.Context, filter ListFilter) ([]*Comment, error) {
	return q.repo.List(ctx, filter)
}

func (q *moderationQueue) observeFailure(action string, commentID int64, err error) {
	if IsNotFound(err) {
		metrics.ObserveModeration(action, metrics.OutcomeNotFound)
		return
	}
	metrics.ObserveModeration(action, metrics.OutcomeError)
	q.logger.Error("comment moderation failed",
		"error", err,
		"action", action,
		"comment_id", commentID)
}
