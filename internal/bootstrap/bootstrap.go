// Package bootstrap wires configuration into services. It is shared by the
// API server and the CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/ecosense/internal/application"
	appanalyses "github.com/bryanwahyu/ecosense/internal/application/analyses"
	appcarbon "github.com/bryanwahyu/ecosense/internal/application/carbon"
	apphabitat "github.com/bryanwahyu/ecosense/internal/application/habitat"
	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	appreforestation "github.com/bryanwahyu/ecosense/internal/application/reforestation"
	appspecies "github.com/bryanwahyu/ecosense/internal/application/species"
	"github.com/bryanwahyu/ecosense/internal/config"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/fallback"
	"github.com/bryanwahyu/ecosense/internal/imaging"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/gemini"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/openai"
	"github.com/bryanwahyu/ecosense/internal/infra/cache"
	"github.com/bryanwahyu/ecosense/internal/infra/db/mysql"
	"github.com/bryanwahyu/ecosense/internal/infra/db/postgres"
	"github.com/bryanwahyu/ecosense/internal/infra/db/sqlite"
	"github.com/bryanwahyu/ecosense/internal/infra/httpserver"
	"github.com/bryanwahyu/ecosense/internal/infra/metrics"
	"github.com/bryanwahyu/ecosense/internal/infra/report"
	"github.com/bryanwahyu/ecosense/internal/infra/storage"
	"github.com/bryanwahyu/ecosense/internal/middleware"
)

// App holds every wired component
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	DB      *sql.DB
	Metrics *metrics.Metrics
	Gemini  *gemini.Client
	OpenAI  *openai.Client
	Runner  *pipeline.Runner

	Habitat       *apphabitat.Service
	Species       *appspecies.Service
	Carbon        *appcarbon.Service
	Reforestation *appreforestation.Service
	Analyses      *appanalyses.Service
}

// New connects storage and builds the services. Close releases the database.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: log}

	db, repo, failures, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	m, err := metrics.New()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}
	app.Metrics = m

	app.Gemini, err = gemini.New(ctx, gemini.Config{
		APIKey:  cfg.AI.Gemini.APIKey,
		Model:   cfg.AI.Gemini.Model,
		BaseURL: cfg.AI.Gemini.BaseURL,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	if !app.Gemini.Configured() {
		log.Warn().Msg("GEMINI_API_KEY not set, every analysis falls back to local estimates")
	}
	app.OpenAI = openai.NewClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model, cfg.AI.OpenAI.BaseURL, nil)

	runner := &pipeline.Runner{
		Primary:  app.Gemini,
		Repo:     repo,
		Failures: failures,
		Metrics:  m,
		Analyzer: imaging.Analyze,
		Metadata: imaging.ExtractMetadata,
		Clock:    application.SystemClock{},
	}
	if app.OpenAI.Configured() {
		runner.Alternate = app.OpenAI
	}
	if cfg.Cache.TTL > 0 {
		runner.Cache = cache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	if cfg.StorageEnabled() {
		store, err := storage.New(ctx, storage.Config{
			Endpoint:  cfg.Minio.Endpoint,
			Region:    cfg.Minio.Region,
			Bucket:    cfg.Minio.BucketName,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		runner.Images = store
	}
	app.Runner = runner

	dice := fallback.NewDice(time.Now)
	app.Habitat = apphabitat.NewService(runner, fallback.NewHabitat(dice))
	app.Species = appspecies.NewService(runner, fallback.NewSpecies(dice))
	app.Carbon = appcarbon.NewService(runner, fallback.NewCarbon())
	app.Reforestation = appreforestation.NewService(runner, fallback.NewReforestation(dice))
	app.Analyses = &appanalyses.Service{Repo: repo, Failures: failures, Renderer: report.NewMarkdown()}

	return app, nil
}

// Handler builds the HTTP router. The rate limiter cleanup stops with ctx.
func (a *App) Handler(ctx context.Context) http.Handler {
	var limiter *middleware.RateLimiter
	if a.Config.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(ctx, a.Config.RateLimit.RPS, a.Config.RateLimit.Burst)
	}
	return httpserver.NewRouter(httpserver.Services{
		Habitat:       a.Habitat,
		Species:       a.Species,
		Carbon:        a.Carbon,
		Reforestation: a.Reforestation,
		Analyses:      a.Analyses,
	}, httpserver.Options{
		Logger:      &a.Logger,
		Metrics:     a.Metrics,
		APIKeys:     a.Config.Auth.APIKeys,
		RateLimiter: limiter,
		CORSOrigins: a.Config.Server.CORSOrigins,
		Critical: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: a.DB},
		},
		Optional: map[string]middleware.HealthChecker{
			"remote": middleware.RemoteChecker{Configured: a.Gemini.Configured},
		},
	})
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, analysis.Repository, analysis.FailureRepository, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err := mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, mysql.NewAnalysisRepository(db), mysql.NewFailureRepository(db), nil
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, postgres.NewAnalysisRepository(db), postgres.NewFailureRepository(db), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		return db, sqlite.NewAnalysisRepository(db), sqlite.NewFailureRepository(db), nil
	}
	return nil, nil, nil, errors.New("unknown database driver " + cfg.Database.Driver)
}
