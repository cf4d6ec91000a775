package posts

import (
	"context"
	"fmt"
	"log/slog"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/media"
)

type postService struct {
	repo     Repository
	comments CommentLister
	images   media.Store
	reads    *ReadCounter
	logger   *slog.Logger
}

// NewPostService creates a new post service.
// images may be nil, in which case posts with images are rejected.
func NewPostService(repo Repository, comments CommentLister, images media.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:     repo,
		comments: comments,
		images:   images,
		reads:    NewReadCounter(repo, logger),
		logger:   logger,
	}
}

// CreatePost validates title and content before storing the image, so a rejected
// post never leaves a file behind.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error) {
	if err := ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := ValidateContent(req.Content); err != nil {
		return nil, err
	}

	var image *string
	if req.Image != nil {
		ref, err := s.saveImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		image = &ref
	}

	created, err := s.repo.Create(ctx, &Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Image:    image,
	})
	if err != nil {
		if image != nil {
			s.removeImage(ctx, *image)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post_id", created.ID, "author_id", created.AuthorID)
	return s.view(ctx, created)
}

// ListPosts returns every post with its approved comments
func (s *postService) ListPosts(ctx context.Context) ([]*PostView, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	views := make([]*PostView, 0, len(all))
	for _, p := range all {
		v, err := s.view(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ViewPost records a read and returns the post
func (s *postService) ViewPost(ctx context.Context, id int64) (*PostView, error) {
	post, err := s.reads.RecordView(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, post)
}

// GetPost returns a post without recording a read
func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePost applies req to the stored post. The previous image is removed only
// after the update is persisted.
func (s *postService) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*PostView, error) {
	if !req.Partial {
		if req.Title == nil {
			return nil, NewValidationError("title", "This field is required.")
		}
		if req.Content == nil {
			return nil, NewValidationError("content", "This field is required.")
		}
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		if err := ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
		updated.Title = *req.Title
	}
	if req.Content != nil {
		if err := ValidateContent(*req.Content); err != nil {
			return nil, err
		}
		updated.Content = *req.Content
	}

	var newImage *string
	switch {
	case req.Image != nil:
		ref, err := s.saveImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		newImage = &ref
		updated.Image = newImage
	case req.RemoveImage:
		updated.Image = nil
	}

	saved, err := s.repo.Update(ctx, &updated)
	if err != nil {
		if newImage != nil {
			s.removeImage(ctx, *newImage)
		}
		return nil, err
	}

	if current.Image != nil && (saved.Image == nil || *saved.Image != *current.Image) {
		s.removeImage(ctx, *current.Image)
	}

	s.logger.Info("post updated", "post_id", saved.ID)
	return s.view(ctx, saved)
}

// DeletePost removes a post. Comments and reactions go with it.
func (s *postService) DeletePost(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted.Image != nil {
		s.removeImage(ctx, *deleted.Image)
	}

	s.logger.Info("post deleted", "post_id", id)
	return nil
}

func (s *postService) view(ctx context.Context, p *Post) (*PostView, error) {
	var approved []*comments.Comment
	if s.comments != nil {
		var err error
		approved, err = s.comments.ListVisible(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load comments for post %d: %w", p.ID, err)
		}
	}

	var imageURL func(string) string
	if s.images != nil {
		imageURL = s.images.URL
	}
	return NewPostView(p, approved, imageURL), nil
}

func (s *postService) saveImage(ctx context.Context, upload *media.Upload) (string, error) {
	if s.images == nil {
		return "", NewValidationError("image", "Image uploads are not enabled.")
	}
	ref, err := s.images.Save(ctx, upload)
	if err != nil {
		if media.IsValidationError(err) {
			return "", imageError(err)
		}
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}

// removeImage is best effort; a leftover file never fails the request
func (s *postService) removeImage(ctx context.Context, ref string) {
	if s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.logger.Warn("failed to remove image", "ref", ref, "error", err)
	}
}
