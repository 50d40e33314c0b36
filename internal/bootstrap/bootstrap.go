package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekurt/studentdir/internal/app/controllers"
	appRepos "github.com/ekurt/studentdir/internal/app/repositories"
	appRoutes "github.com/ekurt/studentdir/internal/app/routes"
	appServices "github.com/ekurt/studentdir/internal/app/services"
	"github.com/ekurt/studentdir/internal/config"
	"github.com/ekurt/studentdir/internal/db"
	appMiddleware "github.com/ekurt/studentdir/internal/middleware"
	"github.com/ekurt/studentdir/internal/pkg/logger"
	"github.com/ekurt/studentdir/internal/seed"
	"github.com/ekurt/studentdir/internal/store"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	StudentService    appServices.StudentService
	StudentController *appControllers.StudentController
	HealthController  *appControllers.HealthController
	StudentRepo       *appRepos.StudentRepository
	Collection        store.Collection
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the document collection selected by the configuration and
// makes sure it exists before the first request arrives. The returned closer
// releases the underlying connections.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (store.Collection, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		lgr.Info().Msg("Using in-memory record store")
		return store.NewMemoryCollection(), func() {}, nil

	case "postgres":
		lgr.Info().Str("host", cfg.Store.Host).Str("dbname", cfg.Store.DBName).Msg("Connecting to record store...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to record store")
			return nil, nil, err
		}

		collection := store.NewPostgresCollection(database.Pool, cfg.Store.Collection)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := collection.EnsureSchema(ctx); err != nil {
			lgr.Error().Err(err).Msg("Failed to prepare record collection")
			database.Close()
			return nil, nil, err
		}

		lgr.Info().Str("collection", cfg.Store.Collection).Msg("Record collection ready")
		return collection, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// BuildDependencies initializes the repository, service and controller layers.
func BuildDependencies(cfg *config.Config, collection store.Collection, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Collection: collection,
		Logger:     lgr,
	}

	deps.StudentRepo = appRepos.NewStudentRepository(collection)
	deps.StudentService = appServices.NewStudentService(deps.StudentRepo)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.HealthController = appControllers.NewHealthController()

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, deps.StudentRepo, lgr); err != nil {
			// Seeding is best-effort; the API is still usable without it.
			lgr.Error().Err(err).Msg("Failed to seed sample data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter builds the gin engine with the application middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Metrics())
	router.Use(corsMiddleware(cfg))

	appRoutes.SetupRouter(router, deps.StudentController, deps.HealthController)

	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}

	allowAll := false
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	return cors.New(corsConfig)
}
