package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"fbar-server/config"
	"fbar-server/controllers"
	"fbar-server/forms"
	"fbar-server/logger"
	"fbar-server/middleware"
	"fbar-server/places"
	"fbar-server/store"
)

func main() {
	// Missing .env is fine in deployed environments where the process env
	// carries everything.
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	if os.Getenv("ACCESS_SECRET") == "" || os.Getenv("REFRESH_SECRET") == "" {
		log.Fatal().Msg("ACCESS_SECRET and REFRESH_SECRET must be set")
	}

	db := setupMongoDB(cfg, log)
	cache := setupRedis(cfg, log)

	repo := store.NewMongo(db, log)
	draftMgr := forms.NewDraftManager(repo, log)
	subMgr := forms.NewSubmissionManager(repo, repo, log)
	placesClient := places.NewClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey)
	if !placesClient.Enabled() {
		log.Warn().Msg("no places API key configured, address lookup disabled")
	}

	ac := controllers.NewAuthController(db, cache, log,
		cfg.LoginMaxAttempts, time.Duration(cfg.LoginLockoutSeconds)*time.Second)
	fc := controllers.NewFormController(draftMgr, subMgr, placesClient, log)
	adc := controllers.NewAdminController(repo, log)
	anc := controllers.NewAccountController(db, cache, log)

	ensureAuth := middleware.EnsureAuthMW(log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Post("/login", ac.LoginWithCredentials)
		r.Post("/register", ac.Register)
		r.Post("/refresh", ac.RefreshAuth)
		r.With(ensureAuth).Post("/logout", ac.Logout)
		r.With(ensureAuth).Post("/password", ac.ChangePassword)
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))
			r.Post("/drafts", fc.SaveDraft)
			r.Get("/drafts/{code}", fc.ResumeDraft)
			r.Post("/submissions", fc.Submit)
			r.Get("/places", fc.LookupPlace)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(ensureAuth)
			// The stream endpoint holds its connection open, so the request
			// timeout only wraps the other admin routes.
			r.Get("/submissions/stream", adc.StreamSubmissions)
			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(30 * time.Second))
				r.Get("/me", anc.AccessAccount)
				r.Get("/submissions", adc.ListSubmissions)
				r.Put("/submissions/{id}/status", adc.UpdateStatus)
				r.Delete("/submissions/{id}", adc.DeleteSubmission)
				r.Post("/export", adc.ExportSubmissions)
			})
		})
	})

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
