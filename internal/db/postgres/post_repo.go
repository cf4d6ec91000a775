package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
)

// postSelect loads a post with its author and both reaction sets in one round trip
const postSelect = `
	SELECT
		p.id, p.author_id, p.title, p.content, p.image, p.read_count, p.created_at, p.updated_at,
		u.id, u.email, u.username, u.first_name, u.last_name, u.is_active, u.is_staff, u.date_joined,
		COALESCE((SELECT array_agg(l.user_id ORDER BY l.user_id) FROM post_likes l WHERE l.post_id = p.id), '{}'),
		COALESCE((SELECT array_agg(n.user_id ORDER BY n.user_id) FROM post_unlikes n WHERE n.post_id = p.id), '{}')
	FROM posts p
	JOIN users u ON u.id = p.author_id`

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post and returns it hydrated
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (author_id, title, content, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.AuthorID, post.Title, post.Content, post.Image).Scan(&id)
	if err != nil {
		if isViolation(err, pgForeignKeyViolation, "posts_author_id_fkey") {
			return nil, posts.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a post with author and reaction sets
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns all posts, newest first
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return result, nil
}

// Update writes the editable columns. read_count and author_id are left alone
// so a concurrent view is never overwritten.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Content, post.Image).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a post. Comments and reactions are removed by ON DELETE CASCADE.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		DELETE FROM posts
		WHERE id = $1
		RETURNING id, author_id, title, content, image, read_count, created_at, updated_at`

	var p posts.Post
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &image, &p.ReadCount, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	if image.Valid {
		p.Image = &image.String
	}
	return &p, nil
}

// IncrementReadCount bumps read_count in a single statement so concurrent views
// serialize on the row lock instead of overwriting each other
func (r *postgresPostRepo) IncrementReadCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts SET read_count = read_count + 1 WHERE id = $1 RETURNING read_count`, id).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, posts.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment read count: %w", err)
	}
	return count, nil
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		p       posts.Post
		u       users.User
		image   sql.NullString
		likes   pq.Int64Array
		unlikes pq.Int64Array
	)

	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &image, &p.ReadCount, &p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.IsActive, &u.IsStaff, &u.DateJoined,
		&likes, &unlikes,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		p.Image = &image.String
	}
	p.Author = &u
	p.Likes = []int64(likes)
	p.Unlikes = []int64(unlikes)
	return &p, nil
}
