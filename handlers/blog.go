package handlers

import (
	"net/http"

	"github.com/akinalp/masterblog/middleware"
	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/services"
)

// BlogHandler serves the /blog routes.
type BlogHandler struct {
	blogService   services.BlogService
	uploadService services.UploadService
}

// NewBlogHandler wires the post handler.
func NewBlogHandler(blogService services.BlogService, uploadService services.UploadService) *BlogHandler {
	return &BlogHandler{
		blogService:   blogService,
		uploadService: uploadService,
	}
}

// blogIDResponse is the envelope of the post mutations.
type blogIDResponse struct {
	Message string `json:"message"`
	BlogID  string `json:"blogId"`
}

// Recently handles GET /blog/recently.
func (h *BlogHandler) Recently(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.GetRecent(r.Context())
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, struct {
		Message     string               `json:"message"`
		RecentBlogs []models.BlogSummary `json:"recent_blogs"`
	}{Message: "Successful", RecentBlogs: blogs})
}

// List handles GET /blog/list.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	blogs, err := h.blogService.GetMine(r.Context(), claims.UserID)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, struct {
		Message string               `json:"message"`
		MyBlogs []models.BlogSummary `json:"my_blogs"`
	}{Message: "Successful", MyBlogs: blogs})
}

// Create handles POST /blog.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req models.CreateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	blogID, err := h.blogService.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, blogIDResponse{Message: "Blog Posted!", BlogID: blogID})
}

// Get handles GET /blog/{blogId}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blogID := r.PathValue("blogId")

	blog, err := h.blogService.Read(r.Context(), blogID)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, struct {
		Message string             `json:"message"`
		Blog    *models.BlogDetail `json:"blog"`
	}{Message: "Successful", Blog: blog})
}

// Update handles PATCH /blog/{blogId}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	blogID := r.PathValue("blogId")

	var req models.UpdateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.WriteError(w, err)
		return
	}

	blogID, err := h.blogService.Update(r.Context(), blogID, claims.UserID, &req)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, blogIDResponse{Message: "Blog Edited!", BlogID: blogID})
}

// Delete handles DELETE /blog/{blogId}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	blogID := r.PathValue("blogId")

	blogID, err := h.blogService.Delete(r.Context(), blogID, claims.UserID)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		BlogID  string `json:"blogId"`
	}{Message: "Blog Deleted!", BlogID: blogID})
}

// UploadImage handles POST /blog/image: a multipart form with an "image"
// field. The stored file's public URL comes back for embedding in a post.
func (h *BlogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		pkg.WriteError(w, pkg.BadRequest("image file is required"))
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(file, header)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, struct {
		Message  string `json:"message"`
		ImageURL string `json:"imageUrl"`
	}{Message: "Image Uploaded!", ImageURL: url})
}
