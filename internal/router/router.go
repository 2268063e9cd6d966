package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"dulce-dosis-web/internal/adapters/dulcedosis"
	"dulce-dosis-web/internal/adapters/session/cookie"
	mem "dulce-dosis-web/internal/adapters/storage/memory"
	pg "dulce-dosis-web/internal/adapters/storage/postgres"
	"dulce-dosis-web/internal/domain/accounts"
	"dulce-dosis-web/internal/domain/activity"
	"dulce-dosis-web/internal/domain/compartments"
	"dulce-dosis-web/internal/domain/treatments"
	"dulce-dosis-web/internal/middleware"
	"dulce-dosis-web/internal/platform/config"
	"dulce-dosis-web/internal/platform/httpclient"
	"dulce-dosis-web/internal/platform/logger"
	"dulce-dosis-web/internal/platform/metrics"
	"dulce-dosis-web/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Config *config.Config // nil => config.DefaultConfig()
	Log    logger.Logger  // nil => logger.Nop()

	// Opcional: si viene, usa Postgres. Si no, intenta Config.Database.DSN y si no in-memory.
	DB *sql.DB

	// Opcional: transporte hacia el API remoto (tests).
	HTTPClient *http.Client
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	m := metrics.New()

	views, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	sessions, err := cookie.NewManager(cookie.Config{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})
	if err != nil {
		return nil, err
	}

	hc, err := httpclient.NewWithBaseURL(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return nil, err
	}
	if opts.HTTPClient != nil {
		hc.HTTP = opts.HTTPClient
	}
	hc.Observe = m.ObserveAPI

	api := dulcedosis.NewClient(hc, dulcedosis.Config{
		AuthScheme:     cfg.API.AuthScheme,
		TreatmentsPath: cfg.API.TreatmentsPath,
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Handle("/static/*", web.StaticHandler())

	// Si no te pasan DB explícita, intenta por config/env
	db := opts.DB
	if db == nil && cfg.Database.DSN != "" {
		opened, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory activity log", map[string]any{"error": err.Error()})
		} else {
			db = opened
		}
	}

	var activityRepo activity.Repository
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("activity schema: %w", err)
		}
		activityRepo = pg.NewActivityRepo(db)
	} else {
		activityRepo = mem.NewActivityRepo()
	}

	// Services por módulo
	activitySvc := activity.NewService(activityRepo)
	treatmentsSvc := treatments.NewService(api, activitySvc)
	accountsSvc := accounts.NewService(api, api, activitySvc, accounts.Options{
		FoldDiacritics: cfg.Accounts.TransliterateUsername,
	})

	// Rutas por módulo
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionContext(sessions))

		accounts.RegisterRoutes(r, accounts.Deps{
			Service:  accountsSvc,
			Sessions: sessions,
			Bind: func(w http.ResponseWriter, r *http.Request) accounts.Session {
				return sessions.Bind(w, r)
			},
			Views:   views,
			Log:     log.With(map[string]any{"module": "accounts"}),
			Metrics: m,
		})
		compartments.RegisterRoutes(r, compartments.Deps{
			Treatments: treatmentsSvc,
			Views:      views,
			Log:        log.With(map[string]any{"module": "compartments"}),
			Metrics:    m,
		})
		treatments.RegisterRoutes(r, treatments.Deps{
			Service: treatmentsSvc,
			Views:   views,
			Log:     log.With(map[string]any{"module": "treatments"}),
		})
		activity.RegisterRoutes(r, activitySvc)
	})

	return r, nil
}
