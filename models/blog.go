package models

import "time"

// Blog is a post record. UserID references the author and is immutable after
// creation. Readed counts successful single-post fetches.
type Blog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	ShortContent string    `json:"short_content"`
	Content      string    `json:"content"`
	Readed       int       `json:"readed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BlogWithAuthor is a post joined with its author's identity. The author
// fields stay empty for orphaned posts (account deleted, post kept).
type BlogWithAuthor struct {
	Blog
	AuthorEmail string
	AuthorName  string
}

// BlogSummary is a list item. Author is only populated for the cross-author
// recent listing; the caller's own listing omits it.
type BlogSummary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// BlogAuthor is the author block embedded in a blog detail.
type BlogAuthor struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// BlogDetail is a full post joined with its author, returned by the
// single-post fetch after the read counter has been bumped.
type BlogDetail struct {
	BlogID       string     `json:"blogId"`
	Title        string     `json:"title"`
	ShortContent string     `json:"shortContent"`
	Content      string     `json:"content"`
	Readed       int        `json:"readed"`
	Created      time.Time  `json:"created"`
	Updated      time.Time  `json:"updated"`
	Author       BlogAuthor `json:"author"`
}

// CreateBlogRequest is the POST /blog body.
type CreateBlogRequest struct {
	Title        string `json:"title"`
	ShortContent string `json:"shortContent"`
	Content      string `json:"content"`
}

// UpdateBlogRequest is the PATCH /blog/{blogId} body; all fields optional but
// at least one must be set.
type UpdateBlogRequest struct {
	Title        string `json:"title"`
	ShortContent string `json:"shortContent"`
	Content      string `json:"content"`
}
