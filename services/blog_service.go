package services

import (
	"context"
	"errors"

	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/repository"
	"github.com/akinalp/masterblog/validation"
)

// recentLimit caps the cross-author recent listing.
const recentLimit = 20

// BlogService is the post API the handlers depend on.
type BlogService interface {
	// GetRecent lists the most recently updated posts across all authors.
	GetRecent(ctx context.Context) ([]models.BlogSummary, error)
	// GetMine lists the caller's own posts.
	GetMine(ctx context.Context, userID string) ([]models.BlogSummary, error)
	Create(ctx context.Context, userID string, req *models.CreateBlogRequest) (string, error)
	// Read fetches one post, bumping its read counter before responding.
	Read(ctx context.Context, blogID string) (*models.BlogDetail, error)
	// Update edits an owned post; at least one field must be set.
	Update(ctx context.Context, blogID, userID string, req *models.UpdateBlogRequest) (string, error)
	Delete(ctx context.Context, blogID, userID string) (string, error)
}

// blogService implements BlogService.
type blogService struct {
	blogRepo repository.BlogRepository
}

// NewBlogService wires the post service.
func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) GetRecent(ctx context.Context) ([]models.BlogSummary, error) {
	blogs, err := s.blogRepo.GetRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	// An empty listing is success; only a nil result counts as a failed fetch.
	if blogs == nil {
		return nil, pkg.Unauthorized("Blogs could not find!")
	}
	return blogs, nil
}

func (s *blogService) GetMine(ctx context.Context, userID string) ([]models.BlogSummary, error) {
	blogs, err := s.blogRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		return nil, pkg.Unauthorized("Invalid Authentication!")
	}
	return blogs, nil
}

func (s *blogService) Create(ctx context.Context, userID string, req *models.CreateBlogRequest) (string, error) {
	err := validation.Run(ctx,
		validation.Length(req.Title, 3, 50, "Please enter a valid title (min 3 and max 50 length)."),
		validation.Length(req.ShortContent, 50, 300, "Please enter a valid short content (min 50 and max 300 length)."),
		validation.Length(req.Content, 300, 1000, "Please enter a valid content (min 300 and max 1000 length)."),
	)
	if err != nil {
		return "", err
	}

	blog := &models.Blog{
		UserID:       userID,
		Title:        req.Title,
		ShortContent: req.ShortContent,
		Content:      req.Content,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return "", err
	}

	return blog.ID, nil
}

func (s *blogService) Read(ctx context.Context, blogID string) (*models.BlogDetail, error) {
	blog, err := s.blogRepo.GetWithAuthor(ctx, blogID)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.NotFound("Blog could not find!")
		}
		return nil, err
	}

	// Count the read and persist before responding. Concurrent reads of the
	// same post are last-write-wins.
	if blog.Readed == 0 {
		blog.Readed = 1
	} else {
		blog.Readed++
	}
	if err := s.blogRepo.UpdateReadCount(ctx, blog.ID, blog.Readed); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return nil, pkg.NotFound("Blog could not find!")
		}
		return nil, err
	}

	return &models.BlogDetail{
		BlogID:       blog.ID,
		Title:        blog.Title,
		ShortContent: blog.ShortContent,
		Content:      blog.Content,
		Readed:       blog.Readed,
		Created:      blog.CreatedAt,
		Updated:      blog.UpdatedAt,
		Author: models.BlogAuthor{
			Email: blog.AuthorEmail,
			Name:  blog.AuthorName,
		},
	}, nil
}

func (s *blogService) Update(ctx context.Context, blogID, userID string, req *models.UpdateBlogRequest) (string, error) {
	if req.Title == "" && req.ShortContent == "" && req.Content == "" {
		return "", pkg.NotFound("There is nothing to change!")
	}

	// Owner-scoped fetch: another author's post looks absent, not forbidden.
	blog, err := s.blogRepo.GetByIDAndUser(ctx, blogID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return "", pkg.NotFound("Blog could not find!")
		}
		return "", err
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.ShortContent != "" {
		blog.ShortContent = req.ShortContent
	}
	if req.Content != "" {
		blog.Content = req.Content
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			return "", pkg.NotFound("Blog could not find!")
		}
		return "", err
	}

	return blogID, nil
}

func (s *blogService) Delete(ctx context.Context, blogID, userID string) (string, error) {
	if err := s.blogRepo.Delete(ctx, blogID, userID); err != nil {
		if errors.Is(err, pkg.ErrNoRecord) {
			// Delete reports 401 where Update reports 404. Kept as-is.
			return "", pkg.Unauthorized("Invalid Authentication!")
		}
		return "", err
	}
	return blogID, nil
}
