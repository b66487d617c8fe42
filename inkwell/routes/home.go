package routes

import (
	"errors"
	"net/http"

	"inkwell/inkwell/controllers"
	"inkwell/inkwell/middlewares"
	"inkwell/inkwell/views"

	"github.com/go-chi/chi/v5"
)

func HomeRoutes(r chi.Router, ctrl *controllers.PostsController) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		featured, err := ctrl.GetFeaturedPost(r.Context())
		if err != nil {
			serverError(w, "Server error", err)
			return
		}
		posts, err := ctrl.GetAllPosts(r.Context())
		if err != nil {
			serverError(w, "Server error", err)
			return
		}
		render(w, "home", views.HomePage{
			User:         middlewares.CurrentUser(r.Context()),
			FeaturedPost: featured,
			Posts:        posts,
		})
	})

	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := postID(r)
		if err != nil {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		post, err := ctrl.GetPost(r.Context(), id)
		if errors.Is(err, controllers.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		if err != nil {
			serverError(w, "Server error", err)
			return
		}
		render(w, "postDetail", views.PostDetailPage{
			User: middlewares.CurrentUser(r.Context()),
			Post: post,
		})
	})
}
