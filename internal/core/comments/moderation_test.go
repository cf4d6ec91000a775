package comments

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory Repository keyed by comment ID
type memoryRepo struct {
	mu       sync.Mutex
	posts    map[int64]string
	comments map[int64]*Comment
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		posts:    map[int64]string{1: "First post", 2: "Second post"},
		comments: make(map[int64]*Comment),
	}
}

func (m *memoryRepo) Create(ctx context.Context, c *Comment) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	title, ok := m.posts[c.PostID]
	if !ok {
		return nil, ErrPostNotFound
	}
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	stored.PostTitle = title
	stored.CreatedAt = time.Now()
	m.comments[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id int64) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	out := *c
	return &out, nil
}

func (m *memoryRepo) SetApproval(ctx context.Context, id int64, approved bool) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	c.IsApproved = approved
	out := *c
	return &out, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return 0, ErrCommentNotFound
	}
	delete(m.comments, id)
	return id, nil
}

func (m *memoryRepo) List(ctx context.Context, filter ListFilter) ([]*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Comment
	for _, c := range m.comments {
		if filter.PostID != nil && c.PostID != *filter.PostID {
			continue
		}
		if filter.Approved != nil && c.IsApproved != *filter.Approved {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// mockRepository is a testify mock of Repository for error paths
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Comment) (*Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockRepository) SetApproval(ctx context.Context, id int64, approved bool) (*Comment, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*Comment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func ids(cs []*Comment) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestSubmit_CreatesPendingComment(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)

	c, err := svc.Submit(context.Background(), 1, 10, "  ok!!!  ")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.False(t, c.IsApproved)
	assert.Equal(t, StatePending, c.State())
	assert.Equal(t, int64(1), c.PostID)
	assert.Equal(t, int64(10), c.AuthorID)
	assert.Equal(t, "ok!!!", c.Content)
	assert.Equal(t, "First post", c.PostTitle)
}

func TestSubmit_RejectedThenResubmitted(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewModerationQueue(repo, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1, 10, "ok!!")
	require.Error(t, err)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, RuleMinLength, valErr.Rule)

	all, err := svc.ListAll(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected submission must not create a comment")

	c, err := svc.Submit(ctx, 1, 10, "ok!!!")
	require.NoError(t, err)
	assert.False(t, c.IsApproved)
}

func TestSubmit_PostNotFound(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)

	_, err := svc.Submit(context.Background(), 404, 10, "hello world")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.True(t, IsNotFound(err))
}

func TestSubmit_ValidatesBeforeTouchingStore(t *testing.T) {
	repo := new(mockRepository)
	svc := NewModerationQueue(repo, nil)

	_, err := svc.Submit(context.Background(), 1, 10, "   ")
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModerationLifecycle(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)
	ctx := context.Background()

	c, err := svc.Submit(ctx, 1, 10, "first comment")
	require.NoError(t, err)

	visible, err := svc.ListVisible(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, ids(visible), c.ID, "pending comment must not be visible")

	all, err := svc.ListAll(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Contains(t, ids(all), c.ID)

	result, err := svc.Approve(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, &ModerationResult{Status: "approved", CommentID: c.ID}, result)

	visible, err = svc.ListVisible(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, ids(visible), c.ID)

	other, err := svc.ListVisible(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)

	result, err = svc.Block(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, &ModerationResult{Status: "blocked", CommentID: c.ID}, result)

	visible, err = svc.ListVisible(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, ids(visible), c.ID)

	all, err = svc.ListAll(ctx, ListFilter{})
	require.NoError(t, err)
	assert.NotContains(t, ids(all), c.ID)
}

func TestApprove_IsIdempotent(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)
	ctx := context.Background()

	c, err := svc.Submit(ctx, 1, 10, "hello there")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, c.ID)
	require.NoError(t, err)
	result, err := svc.Approve(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
}

func TestApproveAndBlock_NotFound(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.Approve(ctx, 999)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.Block(ctx, 999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestBlock_TwiceFails(t *testing.T) {
	svc := NewModerationQueue(newMemoryRepo(), nil)
	ctx := context.Background()

	c, err := svc.Submit(ctx, 1, 10, "to be blocked")
	require.NoError(t, err)

	_, err = svc.Block(ctx, c.ID)
	require.NoError(t, err)
	_, err = svc.Block(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.Approve(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestApprove_PropagatesStoreErrors(t *testing.T) {
	repo := new(mockRepository)
	svc := NewModerationQueue(repo, nil)
	ctx := context.Background()

	boom := errors.New("connection reset")
	repo.On("SetApproval", ctx, int64(5), true).Return(nil, boom)
	repo.On("Delete", ctx, int64(5)).Return(int64(0), ErrConcurrentModification)

	_, err := svc.Approve(ctx, 5)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Block(ctx, 5)
	assert.True(t, IsConflict(err))
	repo.AssertExpectations(t)
}

func TestListVisible_UsesApprovedFilter(t *testing.T) {
	repo := new(mockRepository)
	svc := NewModerationQueue(repo, nil)
	ctx := context.Background()

	repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
		return f.PostID != nil && *f.PostID == 3 && f.Approved != nil && *f.Approved
	})).Return([]*Comment{{ID: 1, PostID: 3, IsApproved: true}}, nil)

	visible, err := svc.ListVisible(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	repo.AssertExpectations(t)
}

func TestListAll_PassesFilter(t *testing.T) {
	repo := new(mockRepository)
	svc := NewModerationQueue(repo, nil)
	ctx := context.Background()

	pending := false
	repo.On("List", ctx, ListFilter{Approved: &pending}).Return([]*Comment{{ID: 2}}, nil)

	got, err := svc.ListAll(ctx, ListFilter{Approved: &pending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	repo.AssertExpectations(t)
}
