package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	pgxv5 "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	manager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/config"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/github"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/live"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/router"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/infrastructure/nower"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/logging"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/render"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/repository"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/service"
)

// App отвечает за жизненный цикл сервиса.
type App struct {
	cfg    config.Config
	server *http.Server
	svc    *service.Service
	hub    *live.Hub
	// repo nil, если архив отключён.
	repo *repository.Storage
}

// New подготавливает все зависимости приложения: GitHub-клиент, архив, сервис, HTTP-роутер.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	fetcher, err := github.New(github.Options{
		BaseURL:     cfg.GitHub.BaseURL,
		Token:       cfg.GitHub.Token,
		Owner:       cfg.GitHub.Owner,
		Repo:        cfg.GitHub.Repo,
		PerPage:     cfg.GitHub.PerPage,
		MaxRequests: cfg.GitHub.MaxRequests,
	})
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}

	nowerImpl := nower.New()

	var (
		archive service.Archive
		trMgr   trm.Manager
		repo    *repository.Storage
	)
	if cfg.Database.URL != "" {
		// Применяем миграции перед подключением к БД
		if err := runMigrations(cfg); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		// Подключаемся к БД с повторными попытками
		pool, err := connectWithRetry(ctx, cfg)
		if err != nil {
			return nil, err
		}
		// Сохранение доски идёт в одной транзакции
		trMgr = manager.Must(pgxv5.NewDefaultFactory(pool))
		repo = repository.New(pool, nowerImpl)
		archive = repo
	} else {
		slog.Warn("database url is empty, board archive disabled")
	}

	svc := service.New(fetcher, archive, cfg, trMgr, nowerImpl)
	hub := live.NewHub()
	svc.Subscribe(hub.Broadcast)

	var swaggerSpec []byte
	if data, err := os.ReadFile(cfg.Swagger.SpecPath); err != nil {
		slog.Warn("failed to load swagger spec", "path", cfg.Swagger.SpecPath, "error", err)
	} else {
		swaggerSpec = data
	}
	handler := router.New(svc, render.New(cfg.Board.Location()), hub, swaggerSpec)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		server: srv,
		svc:    svc,
		hub:    hub,
		repo:   repo,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", a.server.Addr, "repository", a.cfg.GitHub.Repository())
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	if a.cfg.Board.RefreshInterval > 0 {
		go a.refreshLoop(ctx, a.cfg.Board.RefreshInterval)
	}

	select {
	case <-ctx.Done():
		// Graceful shutdown: даём серверу время завершить обработку текущих запросов
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeouts.Shutdown)
		defer cancel()
		err := a.server.Shutdown(shutdownCtx)
		a.close()
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		// Ошибка при запуске сервера
		a.close()
		return err
	}
}

// close освобождает websocket-клиентов и пул БД. Shutdown не ждёт перехваченные соединения.
func (a *App) close() {
	a.hub.Close()
	if a.repo != nil {
		a.repo.Close()
	}
}

// refreshLoop пересобирает доску в фоне, чтобы клиенты /ws получали обновления без запросов.
func (a *App) refreshLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refresh(ctx)
		}
	}
}

func (a *App) refresh(ctx context.Context) {
	if _, err := a.svc.Refresh(ctx); err != nil && ctx.Err() == nil {
		slog.WarnContext(logging.ErrorCtx(ctx, err), "background refresh failed", "error", err)
	}
}

func runMigrations(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// connectWithRetry подключается к БД с экспоненциальной задержкой между попытками.
func connectWithRetry(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	var lastErr error
	// Стратегия повторных попыток: 0s, 1s, 2s, 5s
	backoff := []time.Duration{0, time.Second, 2 * time.Second, 5 * time.Second}
	for attempt, delay := range backoff {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			lastErr = err
			slog.Warn("failed to parse connection string", "attempt", attempt+1, "error", err)
			continue
		}
		if cfg.Database.MaxConnections > 0 {
			poolCfg.MaxConns = cfg.Database.MaxConnections
		}
		if cfg.Database.MinConnections >= 0 {
			poolCfg.MinConns = cfg.Database.MinConnections
		}
		if cfg.Database.MaxConnIdleTime > 0 {
			poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime
		}
		if cfg.Database.MaxConnLifetime > 0 {
			poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		slog.Warn("failed to connect to database, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("connect db: %w", lastErr)
}
