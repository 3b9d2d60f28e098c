// Package main is the entry point of the masterblog backend.
//
// Everything is wired here, dependency-injection style: config, database,
// repositories, services, handlers, middleware, router, server. No globals.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/masterblog/config"
	"github.com/akinalp/masterblog/database"
	"github.com/akinalp/masterblog/handlers"
	"github.com/akinalp/masterblog/middleware"
	"github.com/akinalp/masterblog/pkg"
	"github.com/akinalp/masterblog/pkg/ratelimit"
	"github.com/akinalp/masterblog/repository"
	"github.com/akinalp/masterblog/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] masterblog server starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create storage directory: %v", err)
	}

	// Repository layer
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	blogRepo := repository.NewSQLiteBlogRepo(db.Conn)

	// Service layer
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	blogService := services.NewBlogService(blogRepo)
	uploadService := services.NewUploadService(cfg.Storage.Dir, cfg.Storage.MaxSize)

	// Login brute-force protection: 5 attempts per 2 minutes per IP.
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)

	// Handler layer
	authHandler := handlers.NewAuthHandler(authService, loginLimiter)
	blogHandler := handlers.NewBlogHandler(blogService, uploadService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"masterblog"}`)
	})

	// Auth — public
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Auth — protected
	mux.Handle("PATCH /auth/update", authMiddleware.Require(http.HandlerFunc(authHandler.Update)))
	mux.Handle("PUT /auth/password", authMiddleware.Require(http.HandlerFunc(authHandler.Password)))
	mux.Handle("DELETE /auth/user", authMiddleware.Require(http.HandlerFunc(authHandler.Delete)))

	// Blog — public
	mux.HandleFunc("GET /blog/recently", blogHandler.Recently)
	mux.HandleFunc("GET /blog/{blogId}", blogHandler.Get)

	// Blog — protected
	mux.Handle("GET /blog/list", authMiddleware.Require(http.HandlerFunc(blogHandler.List)))
	mux.Handle("POST /blog", authMiddleware.Require(http.HandlerFunc(blogHandler.Create)))
	mux.Handle("PATCH /blog/{blogId}", authMiddleware.Require(http.HandlerFunc(blogHandler.Update)))
	mux.Handle("DELETE /blog/{blogId}", authMiddleware.Require(http.HandlerFunc(blogHandler.Delete)))
	mux.Handle("POST /blog/image", authMiddleware.Require(http.HandlerFunc(blogHandler.UploadImage)))

	// Uploaded images. Plain filenames only, no subdirectories.
	uploadsHandler := http.StripPrefix("/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Storage.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /uploads/", uploadsHandler)

	// Everything else is an unknown route.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteErrorMessage(w, http.StatusNotFound, "Endpoint not found")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(middleware.Logging(mux))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
