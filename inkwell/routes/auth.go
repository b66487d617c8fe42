package routes

import (
	"errors"
	"net/http"

	"inkwell/inkwell/controllers"
	"inkwell/inkwell/middlewares"
	"inkwell/inkwell/views"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r chi.Router, ctrl *controllers.AuthController) {
	r.Get("/register", func(w http.ResponseWriter, r *http.Request) {
		render(w, "register", views.Page{User: middlewares.CurrentUser(r.Context())})
	})

	r.Post("/register", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := ctrl.Register(
			r.Context(),
			r.FormValue("name"),
			r.FormValue("email"),
			r.FormValue("password"),
			r.FormValue("confirmP"),
		)
		if errors.Is(err, controllers.ErrPasswordMismatch) {
			http.Error(w, "Passwords do not match!", http.StatusBadRequest)
			return
		}
		if err != nil {
			serverError(w, "Error registering user", err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		render(w, "login", views.Page{User: middlewares.CurrentUser(r.Context())})
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		session, err := ctrl.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
		if errors.Is(err, controllers.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			serverError(w, "Server error", err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     middlewares.CookieName,
			Value:    session.Token,
			Path:     "/",
			HttpOnly: true,
		})
		http.Redirect(w, r, "/", http.StatusFound)
	})

	// Logout redirects home no matter what, authenticated or not.
	r.Get("/logout", func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(middlewares.CookieName); err == nil && cookie.Value != "" {
			if err := ctrl.Logout(r.Context(), cookie.Value); err != nil {
				serverError(w, "Server error", err)
				return
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:   middlewares.CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/", http.StatusFound)
	})
}
