package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/masterblog/database"
	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
)

// sqliteBlogRepo implements BlogRepository on SQLite.
type sqliteBlogRepo struct {
	db database.TxQuerier
}

// NewSQLiteBlogRepo returns the SQLite-backed BlogRepository.
func NewSQLiteBlogRepo(db database.TxQuerier) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

func (r *sqliteBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	blog.ID = uuid.NewString()

	query := `
		INSERT INTO blogs (id, user_id, title, short_content, content, readed)
		VALUES (?, ?, ?, ?, ?, 0)
		RETURNING readed, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		blog.ID,
		blog.UserID,
		blog.Title,
		blog.ShortContent,
		blog.Content,
	).Scan(&blog.Readed, &blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *sqliteBlogRepo) GetWithAuthor(ctx context.Context, id string) (*models.BlogWithAuthor, error) {
	// LEFT JOIN: posts survive account deletion, so the author may be gone.
	query := `
		SELECT b.id, b.user_id, b.title, b.short_content, b.content, b.readed,
		       b.created_at, b.updated_at, u.email, u.name
		FROM blogs b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = ?`

	blog := &models.BlogWithAuthor{}
	var authorEmail, authorName sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.UserID, &blog.Title, &blog.ShortContent, &blog.Content,
		&blog.Readed, &blog.CreatedAt, &blog.UpdatedAt, &authorEmail, &authorName,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	blog.AuthorEmail = authorEmail.String
	blog.AuthorName = authorName.String

	return blog, nil
}

func (r *sqliteBlogRepo) GetRecent(ctx context.Context, limit int) ([]models.BlogSummary, error) {
	query := `
		SELECT b.id, b.title, u.name, b.created_at, b.updated_at
		FROM blogs b
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.updated_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blogs: %w", err)
	}
	defer rows.Close()

	// Non-nil so zero rows serialize as [] and count as success.
	blogs := []models.BlogSummary{}
	for rows.Next() {
		var b models.BlogSummary
		var author sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &author, &b.Created, &b.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		b.Author = author.String
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *sqliteBlogRepo) GetByUserID(ctx context.Context, userID string) ([]models.BlogSummary, error) {
	query := `
		SELECT id, title, created_at, updated_at
		FROM blogs
		WHERE user_id = ?
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blogs by user: %w", err)
	}
	defer rows.Close()

	blogs := []models.BlogSummary{}
	for rows.Next() {
		var b models.BlogSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Created, &b.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *sqliteBlogRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Blog, error) {
	query := `
		SELECT id, user_id, title, short_content, content, readed, created_at, updated_at
		FROM blogs
		WHERE id = ? AND user_id = ?`

	blog := &models.Blog{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&blog.ID, &blog.UserID, &blog.Title, &blog.ShortContent, &blog.Content,
		&blog.Readed, &blog.CreatedAt, &blog.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog by id and user: %w", err)
	}

	return blog, nil
}

func (r *sqliteBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	query := `
		UPDATE blogs SET title = ?, short_content = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		blog.Title, blog.ShortContent, blog.Content, blog.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNoRecord
	}

	return nil
}

func (r *sqliteBlogRepo) UpdateReadCount(ctx context.Context, id string, readed int) error {
	// updated_at deliberately untouched: reading a post must not float it to
	// the top of the recent listing.
	result, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET readed = ? WHERE id = ?`, readed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update read count: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNoRecord
	}

	return nil
}

func (r *sqliteBlogRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNoRecord
	}

	return nil
}
