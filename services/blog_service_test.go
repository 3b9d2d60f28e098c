package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
)

// mockBlogRepo is a hand-rolled BlogRepository backed by function fields.
type mockBlogRepo struct {
	createFn          func(ctx context.Context, blog *models.Blog) error
	getWithAuthorFn   func(ctx context.Context, id string) (*models.BlogWithAuthor, error)
	getRecentFn       func(ctx context.Context, limit int) ([]models.BlogSummary, error)
	getByUserIDFn     func(ctx context.Context, userID string) ([]models.BlogSummary, error)
	getByIDAndUserFn  func(ctx context.Context, id, userID string) (*models.Blog, error)
	updateFn          func(ctx context.Context, blog *models.Blog) error
	updateReadCountFn func(ctx context.Context, id string, readed int) error
	deleteFn          func(ctx context.Context, id, userID string) error
}

func (m *mockBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	return m.createFn(ctx, blog)
}

func (m *mockBlogRepo) GetWithAuthor(ctx context.Context, id string) (*models.BlogWithAuthor, error) {
	return m.getWithAuthorFn(ctx, id)
}

func (m *mockBlogRepo) GetRecent(ctx context.Context, limit int) ([]models.BlogSummary, error) {
	return m.getRecentFn(ctx, limit)
}

func (m *mockBlogRepo) GetByUserID(ctx context.Context, userID string) ([]models.BlogSummary, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockBlogRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Blog, error) {
	return m.getByIDAndUserFn(ctx, id, userID)
}

func (m *mockBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	return m.updateFn(ctx, blog)
}

func (m *mockBlogRepo) UpdateReadCount(ctx context.Context, id string, readed int) error {
	return m.updateReadCountFn(ctx, id, readed)
}

func (m *mockBlogRepo) Delete(ctx context.Context, id, userID string) error {
	return m.deleteFn(ctx, id, userID)
}

func validCreateRequest() *models.CreateBlogRequest {
	return &models.CreateBlogRequest{
		Title:        "A valid title",
		ShortContent: strings.Repeat("s", 100),
		Content:      strings.Repeat("c", 500),
	}
}

func TestGetRecentEmptyListIsSuccess(t *testing.T) {
	repo := &mockBlogRepo{
		getRecentFn: func(ctx context.Context, limit int) ([]models.BlogSummary, error) {
			assert.Equal(t, 20, limit)
			return []models.BlogSummary{}, nil
		},
	}
	svc := NewBlogService(repo)

	blogs, err := svc.GetRecent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, blogs)
	assert.Empty(t, blogs)
}

func TestGetRecentNilResultIs401(t *testing.T) {
	repo := &mockBlogRepo{
		getRecentFn: func(ctx context.Context, limit int) ([]models.BlogSummary, error) {
			return nil, nil
		},
	}
	svc := NewBlogService(repo)

	_, err := svc.GetRecent(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Blogs could not find!", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestGetMineEmptyListIsSuccess(t *testing.T) {
	repo := &mockBlogRepo{
		getByUserIDFn: func(ctx context.Context, userID string) ([]models.BlogSummary, error) {
			return []models.BlogSummary{}, nil
		},
	}
	svc := NewBlogService(repo)

	blogs, err := svc.GetMine(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestCreateReturnsNewID(t *testing.T) {
	repo := &mockBlogRepo{
		createFn: func(ctx context.Context, blog *models.Blog) error {
			assert.Equal(t, "user-1", blog.UserID)
			blog.ID = "blog-1"
			return nil
		},
	}
	svc := NewBlogService(repo)

	id, err := svc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "blog-1", id)
}

func TestCreateEnforcesLengthBounds(t *testing.T) {
	persisted := false
	repo := &mockBlogRepo{
		createFn: func(ctx context.Context, blog *models.Blog) error {
			persisted = true
			return nil
		},
	}
	svc := NewBlogService(repo)

	tests := []struct {
		name    string
		mutate  func(r *models.CreateBlogRequest)
		message string
	}{
		{
			name:    "short title",
			mutate:  func(r *models.CreateBlogRequest) { r.Title = "ab" },
			message: "Please enter a valid title (min 3 and max 50 length).",
		},
		{
			name:    "short shortContent",
			mutate:  func(r *models.CreateBlogRequest) { r.ShortContent = "too short" },
			message: "Please enter a valid short content (min 50 and max 300 length).",
		},
		{
			name:    "short content",
			mutate:  func(r *models.CreateBlogRequest) { r.Content = strings.Repeat("c", 299) },
			message: "Please enter a valid content (min 300 and max 1000 length).",
		},
		{
			name:    "long content",
			mutate:  func(r *models.CreateBlogRequest) { r.Content = strings.Repeat("c", 1001) },
			message: "Please enter a valid content (min 300 and max 1000 length).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), "user-1", req)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusUnprocessableEntity, pkg.Normalize(err).Status)
		})
	}

	assert.False(t, persisted)
}

func TestReadIncrementsCountAndPersistsBeforeResponding(t *testing.T) {
	stored := 4
	repo := &mockBlogRepo{
		getWithAuthorFn: func(ctx context.Context, id string) (*models.BlogWithAuthor, error) {
			b := &models.BlogWithAuthor{}
			b.ID = id
			b.Title = "title"
			b.Readed = stored
			b.AuthorEmail = "a@b.com"
			b.AuthorName = "annie"
			return b, nil
		},
		updateReadCountFn: func(ctx context.Context, id string, readed int) error {
			stored = readed
			return nil
		},
	}
	svc := NewBlogService(repo)

	detail, err := svc.Read(context.Background(), "blog-1")
	require.NoError(t, err)
	assert.Equal(t, 5, detail.Readed)
	assert.Equal(t, 5, stored)
	assert.Equal(t, "a@b.com", detail.Author.Email)
	assert.Equal(t, "annie", detail.Author.Name)
}

func TestReadNTimesIncrementsByN(t *testing.T) {
	stored := 0
	repo := &mockBlogRepo{
		getWithAuthorFn: func(ctx context.Context, id string) (*models.BlogWithAuthor, error) {
			b := &models.BlogWithAuthor{}
			b.ID = id
			b.Readed = stored
			return b, nil
		},
		updateReadCountFn: func(ctx context.Context, id string, readed int) error {
			stored = readed
			return nil
		},
	}
	svc := NewBlogService(repo)

	for i := 0; i < 7; i++ {
		_, err := svc.Read(context.Background(), "blog-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 7, stored)
}

func TestReadMissingPostIs404(t *testing.T) {
	repo := &mockBlogRepo{
		getWithAuthorFn: func(ctx context.Context, id string) (*models.BlogWithAuthor, error) {
			return nil, pkg.ErrNoRecord
		},
	}
	svc := NewBlogService(repo)

	_, err := svc.Read(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, "Blog could not find!", err.Error())
	assert.Equal(t, http.StatusNotFound, pkg.Normalize(err).Status)
}

func TestUpdateZeroFieldsIs404WithoutPersistence(t *testing.T) {
	fetched := false
	repo := &mockBlogRepo{
		getByIDAndUserFn: func(ctx context.Context, id, userID string) (*models.Blog, error) {
			fetched = true
			return &models.Blog{ID: id}, nil
		},
	}
	svc := NewBlogService(repo)

	_, err := svc.Update(context.Background(), "blog-1", "user-1", &models.UpdateBlogRequest{})

	require.Error(t, err)
	assert.Equal(t, "There is nothing to change!", err.Error())
	assert.Equal(t, http.StatusNotFound, pkg.Normalize(err).Status)
	assert.False(t, fetched)
}

func TestUpdateCrossAuthorIs404(t *testing.T) {
	repo := &mockBlogRepo{
		getByIDAndUserFn: func(ctx context.Context, id, userID string) (*models.Blog, error) {
			return nil, pkg.ErrNoRecord
		},
	}
	svc := NewBlogService(repo)

	_, err := svc.Update(context.Background(), "blog-1", "someone-else", &models.UpdateBlogRequest{
		Title: "New title",
	})

	require.Error(t, err)
	assert.Equal(t, "Blog could not find!", err.Error())
	assert.Equal(t, http.StatusNotFound, pkg.Normalize(err).Status)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	var saved *models.Blog
	repo := &mockBlogRepo{
		getByIDAndUserFn: func(ctx context.Context, id, userID string) (*models.Blog, error) {
			return &models.Blog{
				ID:           id,
				UserID:       userID,
				Title:        "old title",
				ShortContent: "old short",
				Content:      "old content",
			}, nil
		},
		updateFn: func(ctx context.Context, blog *models.Blog) error {
			saved = blog
			return nil
		},
	}
	svc := NewBlogService(repo)

	id, err := svc.Update(context.Background(), "blog-1", "user-1", &models.UpdateBlogRequest{
		Title: "new title",
	})
	require.NoError(t, err)
	assert.Equal(t, "blog-1", id)
	require.NotNil(t, saved)
	assert.Equal(t, "new title", saved.Title)
	assert.Equal(t, "old short", saved.ShortContent)
	assert.Equal(t, "old content", saved.Content)
}

func TestDeleteCrossAuthorIs401LeavingPostIntact(t *testing.T) {
	repo := &mockBlogRepo{
		deleteFn: func(ctx context.Context, id, userID string) error {
			return pkg.ErrNoRecord
		},
	}
	svc := NewBlogService(repo)

	_, err := svc.Delete(context.Background(), "blog-1", "someone-else")

	require.Error(t, err)
	assert.Equal(t, "Invalid Authentication!", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestDeleteReturnsBlogID(t *testing.T) {
	repo := &mockBlogRepo{
		deleteFn: func(ctx context.Context, id, userID string) error { return nil },
	}
	svc := NewBlogService(repo)

	id, err := svc.Delete(context.Background(), "blog-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "blog-1", id)
}
