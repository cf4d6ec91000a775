package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/users"
)

// commentColumns reads a comment aliased as c joined with its author u and post p
const commentColumns = `
		c.id, c.post_id, c.author_id, c.content, c.is_approved, c.created_at,
		p.title,
		u.id, u.email, u.username, u.first_name, u.last_name, u.is_active, u.is_staff, u.date_joined`

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a new comment. A missing post surfaces as ErrPostNotFound.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) (*comments.Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, content, is_approved)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorID, comment.Content, comment.IsApproved).Scan(&id)
	if err != nil {
		if isViolation(err, pgForeignKeyViolation, "comments_post_id_fkey") {
			return nil, comments.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a comment with its author and post title
func (r *postgresCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// SetApproval updates is_approved and reads the result back in one statement
func (r *postgresCommentRepo) SetApproval(ctx context.Context, id int64, approved bool) (*comments.Comment, error) {
	query := `
		WITH c AS (
			UPDATE comments SET is_approved = $2
			WHERE id = $1
			RETURNING id, post_id, author_id, content, is_approved, created_at
		)
		SELECT ` + commentColumns + `
		FROM c
		JOIN posts p ON p.id = c.post_id
		JOIN users u ON u.id = c.author_id`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id, approved))
	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		if isRetryable(err) {
			return nil, fmt.Errorf("%w: %v", comments.ErrConcurrentModification, err)
		}
		return nil, fmt.Errorf("failed to set comment approval: %w", err)
	}
	return comment, nil
}

// Delete removes a comment permanently
func (r *postgresCommentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var deletedID int64
	err := r.db.QueryRowContext(ctx, `DELETE FROM comments WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err == sql.ErrNoRows {
		return 0, comments.ErrCommentNotFound
	}
	if err != nil {
		if isRetryable(err) {
			return 0, fmt.Errorf("%w: %v", comments.ErrConcurrentModification, err)
		}
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	return deletedID, nil
}

// List returns comments matching filter, oldest first
func (r *postgresCommentRepo) List(ctx context.Context, filter comments.ListFilter) ([]*comments.Comment, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.PostID != nil {
		args = append(args, *filter.PostID)
		conditions = append(conditions, fmt.Sprintf("c.post_id = $%d", len(args)))
	}
	if filter.Approved != nil {
		args = append(args, *filter.Approved)
		conditions = append(conditions, fmt.Sprintf("c.is_approved = $%d", len(args)))
	}

	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		JOIN users u ON u.id = c.author_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at, c.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*comments.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}

func scanComment(row rowScanner) (*comments.Comment, error) {
	var (
		c comments.Comment
		u users.User
	)
	err := row.Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.IsApproved, &c.CreatedAt,
		&c.PostTitle,
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.IsActive, &u.IsStaff, &u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	c.Author = &u
	return &c, nil
}
