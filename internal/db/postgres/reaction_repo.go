package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Scribe/internal/core/engagement"
)

type postgresReactionRepo struct {
	db *sql.DB
}

// NewReactionRepository creates a new PostgreSQL repository for post likes and unlikes
func NewReactionRepository(db *sql.DB) engagement.Repository {
	return &postgresReactionRepo{db: db}
}

// Mutate locks the post row with SELECT ... FOR UPDATE, so concurrent reactions on the
// same post run one after another. Reactions on different posts never contend.
func (r *postgresReactionRepo) Mutate(ctx context.Context, postID int64, fn func(*engagement.Reactions) error) (*engagement.Reactions, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx, "reaction mutate")

	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, engagement.ErrPostNotFound
	}
	if err != nil {
		return nil, classifyReactionErr("lock post", err)
	}

	state, err := loadReactions(ctx, tx, postID)
	if err != nil {
		return nil, err
	}

	before := state.Clone()
	if err := fn(state); err != nil {
		return nil, err
	}

	changes := engagement.Diff(before, state)
	if !changes.Empty() {
		if err := persistChanges(ctx, tx, postID, changes); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyReactionErr("commit", err)
	}
	return state, nil
}

// Get returns the reaction sets of a post without locking it
func (r *postgresReactionRepo) Get(ctx context.Context, postID int64) (*engagement.Reactions, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, engagement.ErrPostNotFound
	}
	return loadReactions(ctx, r.db, postID)
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadReactions(ctx context.Context, q querier, postID int64) (*engagement.Reactions, error) {
	var likes, unlikes pq.Int64Array
	err := q.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT array_agg(user_id) FROM post_likes WHERE post_id = $1), '{}'),
			COALESCE((SELECT array_agg(user_id) FROM post_unlikes WHERE post_id = $1), '{}')`,
		postID).Scan(&likes, &unlikes)
	if err != nil {
		return nil, classifyReactionErr("load reactions", err)
	}
	return engagement.NewReactions(postID, likes, unlikes), nil
}

func persistChanges(ctx context.Context, tx *sql.Tx, postID int64, c engagement.Changes) error {
	statements := []struct {
		query string
		ids   []int64
	}{
		{`DELETE FROM post_likes WHERE post_id = $1 AND user_id = ANY($2)`, c.RemoveLikes},
		{`DELETE FROM post_unlikes WHERE post_id = $1 AND user_id = ANY($2)`, c.RemoveUnlikes},
		{`INSERT INTO post_likes (post_id, user_id) SELECT $1, unnest($2::bigint[])`, c.AddLikes},
		{`INSERT INTO post_unlikes (post_id, user_id) SELECT $1, unnest($2::bigint[])`, c.AddUnlikes},
	}

	for _, st := range statements {
		if len(st.ids) == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, st.query, postID, pq.Array(st.ids)); err != nil {
			return classifyReactionErr("persist reactions", err)
		}
	}
	return nil
}

func classifyReactionErr(op string, err error) error {
	if isRetryable(err) {
		return fmt.Errorf("%w: %s: %v", engagement.ErrConcurrentModification, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
