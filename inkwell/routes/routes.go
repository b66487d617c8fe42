package routes

import (
	"net/http"

	"inkwell/inkwell/utils/logging"
	"inkwell/inkwell/views"

	"go.uber.org/zap"
)

// serverError logs the real error and answers the caller with a plain-text
// 500. Store and filesystem failures all funnel through here.
func serverError(w http.ResponseWriter, msg string, err error) {
	logging.ErrorLogger.Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

// render writes the page; a template failure at this point can only be
// reported as a 500.
func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Render(w, name, data); err != nil {
		logging.ErrorLogger.Error("template render error", zap.String("page", name), zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
