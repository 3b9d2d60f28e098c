package repository

import (
	"context"

	"github.com/akinalp/masterblog/models"
)

// BlogRepository covers post persistence. List methods return a non-nil empty
// slice when nothing matches — only a failed fetch produces an error.
// Owner-scoped methods filter on both post id and author id, so another
// author's post is indistinguishable from an absent one.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	// GetWithAuthor fetches one post joined with its author.
	GetWithAuthor(ctx context.Context, id string) (*models.BlogWithAuthor, error)
	// GetRecent lists the most recently updated posts across all authors,
	// newest first, joined with the author display name.
	GetRecent(ctx context.Context, limit int) ([]models.BlogSummary, error)
	GetByUserID(ctx context.Context, userID string) ([]models.BlogSummary, error)
	// GetByIDAndUser is the owner-scoped single fetch used by updates.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Blog, error)
	// Update persists title/shortContent/content changes.
	Update(ctx context.Context, blog *models.Blog) error
	// UpdateReadCount persists a new read counter value.
	UpdateReadCount(ctx context.Context, id string, readed int) error
	// Delete removes the post owner-scoped; no match yields pkg.ErrNoRecord.
	Delete(ctx context.Context, id, userID string) error
}
