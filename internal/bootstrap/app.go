package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"uigen-backend/internal/admission"
	"uigen-backend/internal/generations"
	"uigen-backend/internal/llm"
	"uigen-backend/internal/llm/gemini"
	"uigen-backend/internal/llm/mock"
	"uigen-backend/internal/llm/openai"
	"uigen-backend/internal/shared/config"
	"uigen-backend/internal/shared/server"
	"uigen-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Provider          llm.Client
	Admission         *admission.Controller
	GenerationsRepo   generations.Repo
	GenerationService *generations.Service
	GenerationHandler *generations.Handler
}

// Build prepares shared dependencies and wires routes. The generation
// provider is selected once here, at process startup, never per request.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Provider:  provider,
		Admission: buildAdmission(cfg),
	}

	if app.DB != nil {
		app.GenerationsRepo = &generations.PGRepo{DB: app.DB}
	} else {
		app.GenerationsRepo = generations.NewMemoryRepo()
	}

	app.GenerationService = generations.NewService(app.Provider, app.GenerationsRepo, cfg.EntryPath, cfg.LLMTimeout)
	app.GenerationHandler = generations.NewHandler(app.GenerationService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Admission:         app.Admission,
		GenerationHandler: app.GenerationHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory history")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildProvider(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		log.Printf("bootstrap: no provider credential; using deterministic mock generator")
		return mock.New(), nil
	}
}

func buildAdmission(cfg config.Config) *admission.Controller {
	var store admission.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("bootstrap: invalid REDIS_URL, falling back to memory limiter: %v", err)
		} else {
			store = admission.NewRedisStore(redis.NewClient(opts))
		}
	}
	return admission.NewController(admission.Config{
		Capacity: cfg.RateLimitCapacity,
		Window:   cfg.RateLimitWindow,
	}, store)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
