package posts

import (
	"time"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/media"
	"Scribe/internal/core/users"
)

// Post represents a blog post as stored in the database.
// AuthorID never changes after creation. ReadCount is only written by the ReadCounter.
type Post struct {
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
	Author    *users.User `json:"author" db:"-"`
	Image     *string     `json:"image,omitempty" db:"image"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Likes     []int64     `json:"likes" db:"-"`
	Unlikes   []int64     `json:"unlikes" db:"-"`
	ID        int64       `json:"id" db:"id"`
	AuthorID  int64       `json:"-" db:"author_id"`
	ReadCount int64       `json:"read_count" db:"read_count"`
}

// CreatePostRequest represents input for creating a post
type CreatePostRequest struct {
	Image    *media.Upload
	Title    string
	Content  string
	AuthorID int64
}

// UpdatePostRequest represents a full (PUT) or partial (PATCH) update.
// Nil fields are left unchanged on a partial update and rejected on a full one.
type UpdatePostRequest struct {
	Title       *string
	Content     *string
	Image       *media.Upload
	RemoveImage bool
	Partial     bool
}

// PostView is the API representation of a post with its approved comments
type PostView struct {
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Author       *users.User         `json:"author"`
	Image        *string             `json:"image"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
	Likes        []int64             `json:"likes"`
	Unlikes      []int64             `json:"unlikes"`
	Comments     []*comments.Comment `json:"comments"`
	ID           int64               `json:"id"`
	ReadCount    int64               `json:"read_count"`
	LikesCount   int                 `json:"likes_count"`
	UnlikesCount int                 `json:"unlikes_count"`
}

// NewPostView builds the API representation of a post.
// imageURL turns a stored image reference into a public URL.
func NewPostView(p *Post, approved []*comments.Comment, imageURL func(string) string) *PostView {
	view := &PostView{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Author:       p.Author,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		ReadCount:    p.ReadCount,
		Likes:        nonNil(p.Likes),
		Unlikes:      nonNil(p.Unlikes),
		LikesCount:   len(p.Likes),
		UnlikesCount: len(p.Unlikes),
		Comments:     approved,
	}
	if view.Comments == nil {
		view.Comments = []*comments.Comment{}
	}
	if p.Image != nil && *p.Image != "" {
		url := *p.Image
		if imageURL != nil {
			url = imageURL(url)
		}
		view.Image = &url
	}
	return view
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
