package routes

import (
	"inkwell/inkwell/controllers"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(r chi.Router, ctrl *controllers.HealthController) {
	r.Get("/healthz", ctrl.HealthCheck)
}
