package routes

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"inkwell/inkwell/controllers"
	"inkwell/inkwell/middlewares"
	"inkwell/inkwell/views"

	"github.com/go-chi/chi/v5"
)

// Uploaded images above this stay in temp files rather than memory.
const maxUploadMemory = 10 << 20

// formFile pulls the optional image out of the multipart form. No file, or a
// non-multipart form, both mean "no image"; the caller must Close the file
// when one is returned.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, nil
	}
	return file, header
}

func postID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func PostRoutes(r chi.Router, ctrl *controllers.PostsController) {
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RequireAuth)

		gr.Get("/post", func(w http.ResponseWriter, r *http.Request) {
			render(w, "post", views.Page{User: middlewares.CurrentUser(r.Context())})
		})

		gr.Post("/post", func(w http.ResponseWriter, r *http.Request) {
			user := middlewares.CurrentUser(r.Context())
			file, header := formFile(r)
			if file != nil {
				defer file.Close()
			}
			_, err := ctrl.CreatePost(r.Context(), user.ID, r.FormValue("title"), r.FormValue("content"), file, header)
			if err != nil {
				serverError(w, "Failed to create post.", err)
				return
			}
			http.Redirect(w, r, "/", http.StatusFound)
		})

		gr.Get("/myposts", func(w http.ResponseWriter, r *http.Request) {
			user := middlewares.CurrentUser(r.Context())
			posts, err := ctrl.GetPostsByUser(r.Context(), user.ID)
			if err != nil {
				serverError(w, "Server error", err)
				return
			}
			render(w, "myposts", views.PostListPage{User: user, Posts: posts})
		})

		gr.Get("/post/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			user := middlewares.CurrentUser(r.Context())
			id, err := postID(r)
			if err != nil {
				http.Error(w, "Post not found or unauthorized.", http.StatusNotFound)
				return
			}
			post, err := ctrl.GetOwnedPost(r.Context(), id, user.ID)
			if errors.Is(err, controllers.ErrNotFound) {
				http.Error(w, "Post not found or unauthorized.", http.StatusNotFound)
				return
			}
			if err != nil {
				serverError(w, "Error loading post for edit.", err)
				return
			}
			render(w, "editPost", views.EditPostPage{User: user, Post: post})
		})

		gr.Post("/post/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			user := middlewares.CurrentUser(r.Context())
			id, err := postID(r)
			if err != nil {
				http.Error(w, "Post not found or unauthorized.", http.StatusNotFound)
				return
			}
			file, header := formFile(r)
			if file != nil {
				defer file.Close()
			}
			err = ctrl.UpdatePost(r.Context(), id, user.ID, r.FormValue("title"), r.FormValue("content"), file, header)
			if errors.Is(err, controllers.ErrNotFound) {
				http.Error(w, "Post not found or unauthorized.", http.StatusNotFound)
				return
			}
			if err != nil {
				serverError(w, "Error updating post.", err)
				return
			}
			http.Redirect(w, r, "/myposts", http.StatusFound)
		})

		gr.Post("/post/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
			user := middlewares.CurrentUser(r.Context())
			id, err := postID(r)
			if err != nil {
				// Nothing to delete either way.
				http.Redirect(w, r, "/myposts", http.StatusFound)
				return
			}
			if err := ctrl.DeletePost(r.Context(), id, user.ID); err != nil {
				serverError(w, "Error deleting post.", err)
				return
			}
			http.Redirect(w, r, "/myposts", http.StatusFound)
		})
	})
}
