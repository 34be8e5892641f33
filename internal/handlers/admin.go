package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/teddy12-design/my-blog/internal/middleware"
	"github.com/teddy12-design/my-blog/internal/models"
	"github.com/teddy12-design/my-blog/internal/services"
	"github.com/teddy12-design/my-blog/internal/store"
)

// maxUploadSize bounds multipart form memory for the two image slots.
const maxUploadSize = 20 << 20 // 20MB

type MessageResponse struct {
	Message string `json:"message"`
}

type PageResponse struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type DashboardResponse struct {
	Title string        `json:"title"`
	Posts []models.Post `json:"posts"`
}

type PostResponse struct {
	Title string       `json:"title"`
	Post  *models.Post `json:"post"`
}

// AdminHandler serves the blog administration routes.
type AdminHandler struct {
	auth   *services.AuthService
	posts  *services.PostService
	secure bool // mark the session cookie Secure in production
	log    *zap.SugaredLogger
}

func NewAdminHandler(auth *services.AuthService, posts *services.PostService, secure bool, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{auth: auth, posts: posts, secure: secure, log: log}
}

// LoginPage serves the login view data.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{
		Title:       "Admin",
		Description: "Simple blog admin backend",
	})
}

// Login checks the submitted credentials and starts a session.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Username and password are required"})
		return
	}

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid credentials"})
			return
		}
		h.log.Errorw("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}

	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register creates a new admin user and starts a session right away.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Username and password are required"})
		return
	}

	token, err := h.auth.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeJSON(w, http.StatusConflict, MessageResponse{Message: "Username already in use. Please choose another."})
			return
		}
		h.log.Errorw("registration failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}

	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard serves the post list.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.log.Errorw("failed to list posts", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		Title: "Dashboard",
		Posts: posts,
	})
}

// AddPostPage serves the create form view data.
func (h *AdminHandler) AddPostPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{Title: "Add Post"})
}

// AddPost creates a post from the submitted multipart form.
func (h *AdminHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	in, ok := h.postInput(w, r)
	if !ok {
		return
	}

	if _, err := h.posts.Create(r.Context(), in); err != nil {
		h.log.Errorw("failed to create post", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Failed to create post"})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// EditPostPage serves the edit form view data for one post.
func (h *AdminHandler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Post not found"})
			return
		}
		h.log.Errorw("failed to load post", "id", id.Hex(), "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{
		Title: "Edit Post",
		Post:  post,
	})
}

// EditPost updates a post from the submitted multipart form. Image slots
// without a replacement file keep their stored references.
func (h *AdminHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}
	in, ok := h.postInput(w, r)
	if !ok {
		return
	}

	if _, err := h.posts.Update(r.Context(), id, in); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Post not found"})
			return
		}
		h.log.Errorw("failed to update post", "id", id.Hex(), "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Failed to update post"})
		return
	}

	http.Redirect(w, r, "/edit-post/"+id.Hex(), http.StatusSeeOther)
}

// DeletePost removes a post. Media stays on the media host.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Post not found"})
			return
		}
		h.log.Errorw("failed to delete post", "id", id.Hex(), "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Failed to delete post"})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// postID parses the id route parameter. An unparseable id is indistinguishable
// from a missing post.
func (h *AdminHandler) postID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Post not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// postInput parses the add/edit multipart form with its two fixed optional
// file slots.
func (h *AdminHandler) postInput(w http.ResponseWriter, r *http.Request) (services.PostInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid multipart form"})
		return services.PostInput{}, false
	}

	title := r.FormValue("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Title is required"})
		return services.PostInput{}, false
	}

	return services.PostInput{
		Title:  title,
		Body:   r.FormValue("body"),
		Image:  formFile(r, "image"),
		Image2: formFile(r, "image2"),
	}, true
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}

func (h *AdminHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AdminHandler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
