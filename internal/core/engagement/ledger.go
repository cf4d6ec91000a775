package engagement

import (
	"context"
	"errors"
	"log/slog"

	"Scribe/internal/metrics"
)

// maxAttempts bounds retries of a mutation the store rejected as conflicting
const maxAttempts = 3

// Result describes the state of a post's reactions after a like or unlike
type Result struct {
	Status       string `json:"status"`
	UserID       int64  `json:"user_id"`
	LikesCount   int    `json:"likes_count"`
	UnlikesCount int    `json:"unlikes_count"`
}

type ledger struct {
	repo   Repository
	logger *slog.Logger
}

// NewLedger creates the engagement ledger
func NewLedger(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &ledger{
		repo:   repo,
		logger: logger,
	}
}

// Like records that userID likes the post
func (l *ledger) Like(ctx context.Context, postID, userID int64) (*Result, error) {
	return l.react(ctx, postID, userID, ReactionLike)
}

// Unlike records that userID unlikes the post
func (l *ledger) Unlike(ctx context.Context, postID, userID int64) (*Result, error) {
	return l.react(ctx, postID, userID, ReactionUnlike)
}

// Reactions returns the reaction sets of a post
func (l *ledger) Reactions(ctx context.Context, postID int64) (*Reactions, error) {
	return l.repo.Get(ctx, postID)
}

func (l *ledger) react(ctx context.Context, postID, userID int64, reaction Reaction) (*Result, error) {
	var (
		state    *Reactions
		err      error
		attempts int
	)

	for attempts = 1; attempts <= maxAttempts; attempts++ {
		state, err = l.repo.Mutate(ctx, postID, func(r *Reactions) error {
			return r.apply(userID, reaction)
		})
		if !IsConflict(err) || ctx.Err() != nil || attempts == maxAttempts {
			break
		}
		l.logger.Warn("reaction conflicted, retrying",
			"post_id", postID,
			"user_id", userID,
			"reaction", reaction,
			"attempt", attempts)
	}

	if err != nil {
		metrics.ObserveReaction(string(reaction), outcomeFor(err))
		if !IsAlreadyInState(err) && !IsNotFound(err) {
			l.logger.Error("failed to record reaction",
				"error", err,
				"post_id", postID,
				"user_id", userID,
				"reaction", reaction,
				"attempts", attempts)
		}
		return nil, err
	}

	metrics.ObserveReaction(string(reaction), metrics.OutcomeOK)
	l.logger.Info("reaction recorded",
		"post_id", postID,
		"user_id", userID,
		"reaction", reaction)

	return &Result{
		Status:       string(reaction) + "d",
		UserID:       userID,
		LikesCount:   len(state.likes),
		UnlikesCount: len(state.unlikes),
	}, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyInState):
		return metrics.OutcomeRejected
	case errors.Is(err, ErrPostNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
