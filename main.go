package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/razzuSharma/girwan-kumar/internal/config"
	"github.com/razzuSharma/girwan-kumar/internal/db"
	"github.com/razzuSharma/girwan-kumar/internal/handlers"
	appmiddleware "github.com/razzuSharma/girwan-kumar/internal/middleware"
	"github.com/razzuSharma/girwan-kumar/internal/storage"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	    email TEXT NOT NULL UNIQUE,
	    password_hash TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS posts (
	    id BIGSERIAL PRIMARY KEY,
	    user_id UUID NOT NULL REFERENCES users(id),
	    title TEXT NOT NULL,
	    content TEXT NOT NULL,
	    slug TEXT NOT NULL UNIQUE,
	    excerpt TEXT,
	    meta_title TEXT,
	    meta_description TEXT,
	    featured_image TEXT,
	    is_published BOOLEAN NOT NULL DEFAULT TRUE,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS profile (
	    id UUID PRIMARY KEY REFERENCES users(id),
	    full_name TEXT,
	    specialty TEXT,
	    clinic_name TEXT,
	    phone TEXT,
	    address TEXT,
	    bio TEXT,
	    avatar_url TEXT,
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS appointment_requests (
	    id BIGSERIAL PRIMARY KEY,
	    name TEXT NOT NULL,
	    email TEXT NOT NULL,
	    phone TEXT NOT NULL,
	    preferred_date TEXT,
	    reason TEXT,
	    message TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE OR REPLACE VIEW posts_with_author AS
	    SELECT
	        p.id,
	        p.title,
	        p.slug,
	        p.excerpt,
	        p.featured_image,
	        p.created_at,
	        pr.full_name AS author_name,
	        pr.specialty AS author_specialty,
	        pr.avatar_url AS author_avatar_url
	    FROM posts p
	    LEFT JOIN profile pr ON pr.id = p.user_id
	    WHERE p.is_published;`,
}

func main() {
	cfg := config.Load()

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer store.Close()

	conn, err := store.Pool().Acquire(ctx)
	if err != nil {
		log.Fatalf("failed to acquire db connection: %v", err)
	}
	for _, stmt := range migrations {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
	conn.Release()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		if err := store.EnsureUser(ctx, cfg.AdminEmail, string(hash)); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	avatars, err := storage.NewAvatarStore(cfg.AvatarDir)
	if err != nil {
		log.Fatalf("failed to init avatar storage: %v", err)
	}

	secureCookies := strings.HasPrefix(cfg.PublicBaseURL, "https://")
	authHandler := handlers.NewAuthHandler(store, []byte(cfg.JWTSecret), secureCookies)
	postsHandler := handlers.NewPostsHandler(store)
	appointmentsHandler := handlers.NewAppointmentsHandler(store)
	profileHandler := handlers.NewProfileHandler(store, avatars, cfg.PublicBaseURL)
	dashboardHandler := handlers.NewDashboardHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", handlers.Health)
	r.Handle("/avatars/*", http.StripPrefix("/avatars/", http.FileServer(http.Dir(avatars.Root()))))

	r.Route("/api", func(r chi.Router) {
		// 5 login attempts per minute per IP
		loginLimiter := appmiddleware.NewRateLimiter(5, time.Minute)
		r.With(loginLimiter.Limit).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		publicLimiter := appmiddleware.NewRateLimiter(30, time.Minute)
		r.With(publicLimiter.Limit).Get("/posts", postsHandler.ListPublic)
		r.Get("/posts/{slug}", postsHandler.GetBySlug)

		r.Post("/appointments", appointmentsHandler.Intake)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authHandler.RequireSession)

			r.Get("/dashboard", dashboardHandler.Stats)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postsHandler.ListAdmin)
				r.Post("/", postsHandler.Create)
				r.Get("/{id}", postsHandler.GetAdmin)
				r.Put("/{id}", postsHandler.Update)
				r.Delete("/{id}", postsHandler.Delete)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Post("/avatar", profileHandler.UploadAvatar)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", appointmentsHandler.List)
				r.Delete("/{id}", appointmentsHandler.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
