package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/inkwell/config"
	"inkwell/inkwell/controllers"
	"inkwell/inkwell/middlewares"
	"inkwell/inkwell/routes"
	"inkwell/inkwell/sources/psql"
	"inkwell/inkwell/sources/psql/dao"
	"inkwell/inkwell/sources/uploads"
	"inkwell/inkwell/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	postDAO := dao.NewPostDAO(db.DB)
	sessionDAO := dao.NewSessionDAO(db.DB)

	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		logging.ErrorLogger.Error("upload dir error", zap.Error(err))
		os.Exit(1)
	}

	authCtrl := controllers.NewAuthController(userDAO, sessionDAO)
	postsCtrl := controllers.NewPostsController(postDAO, store)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middlewares.Session(sessionDAO, userDAO))

	routes.HomeRoutes(r, postsCtrl)
	routes.AuthRoutes(r, authCtrl)
	routes.PostRoutes(r, postsCtrl)
	routes.HealthRoutes(r, healthCtrl)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	// Reap expired sessions in the background until shutdown.
	stopCleaner := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-stopCleaner:
				return
			case <-ticker.C:
				if err := sessionDAO.DeleteExpired(context.Background()); err != nil {
					logging.ErrorLogger.Error("session cleanup error", zap.Error(err))
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	close(stopCleaner)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
