package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"gymhub/internal/cache"
	"gymhub/internal/config"
	"gymhub/internal/database"
	"gymhub/internal/handlers"
	"gymhub/internal/messaging"
	"gymhub/internal/metrics"
	"gymhub/internal/repository"
	"gymhub/internal/service"
	"gymhub/internal/validation"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	cache    *cache.SessionCache
	nats     *messaging.NATSClient
	metrics  *metrics.Metrics
	services *service.Services
}

// NewServer создает новый экземпляр сервера. Resources opened before a
// failing step are released before the error is returned.
func NewServer(ctx context.Context, cfg *config.Config) (srv *Server, err error) {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)
	validation.Setup()

	s := &Server{config: cfg}
	defer func() {
		if err != nil {
			_ = s.Cleanup()
		}
	}()

	// Подключаемся к базе данных
	s.db, err = database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Запускаем миграции
	if err = s.db.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Кэш сессий опционален
	s.cache, err = cache.NewSessionCache(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session cache: %w", err)
	}

	// Подключаемся к NATS
	s.nats, err = messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	if cfg.MetricsEnabled {
		s.metrics = metrics.New()
	}

	// Создаем репозитории и сервисы
	repos := repository.NewRepositories(s.db)
	s.services = service.NewServices(repos, service.Options{
		BcryptCost:        cfg.BcryptCost,
		ImportConcurrency: cfg.ImportConcurrency,
		NATS:              s.nats,
		Cache:             s.cache,
		Metrics:           s.metrics,
	})

	if err = s.services.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	s.router = NewRouter(RouterConfig{
		Handlers:   handlers.NewHandlers(s.services, cfg.UploadMaxBytes),
		Users:      s.services.Users,
		Metrics:    s.metrics,
		DB:         s.db,
		CORSOrigin: cfg.CORSOrigin,
	})

	slog.Info("Server initialized",
		"session_cache", s.cache != nil,
		"nats", s.nats.Enabled(),
		"metrics", s.metrics != nil)

	return s, nil
}

// Handler возвращает роутер для http.Server и тестов
func (s *Server) Handler() http.Handler {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing session cache", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
