package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/movebroker/internal/config"
	"github.com/GlebRadaev/movebroker/internal/filestore"
	"github.com/GlebRadaev/movebroker/internal/gateway"
	"github.com/GlebRadaev/movebroker/internal/handlers"
	"github.com/GlebRadaev/movebroker/internal/notify"
	"github.com/GlebRadaev/movebroker/internal/pg"
	"github.com/GlebRadaev/movebroker/internal/pinlimit"
	"github.com/GlebRadaev/movebroker/internal/reconcile"
	"github.com/GlebRadaev/movebroker/internal/repo"
	"github.com/GlebRadaev/movebroker/internal/service"
	"github.com/GlebRadaev/movebroker/internal/tracing"
	"github.com/GlebRadaev/movebroker/pkg/auth"
	"github.com/GlebRadaev/movebroker/pkg/clients"
	"github.com/GlebRadaev/movebroker/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg        *config.Config
	api        *handlers.Handlers
	srv        *service.Services
	repo       *repo.Repositories
	reconciler *reconcile.Service

	closers []func() error

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	tp, err := tracing.Init(cfg.JaegerEndpoint)
	if err != nil {
		zap.L().Warn("tracer init failed, continuing without tracing", zap.Error(err))
	} else if tp != nil {
		a.closers = append(a.closers, func() error {
			sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return tp.Shutdown(sCtx)
		})
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)
	a.closers = append(a.closers, func() error {
		conn.Close()
		return nil
	})

	ext, err := a.external(ctx, cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.repo = repo.New(conn)
	a.srv = service.New(cfg, a.repo, txManager, ext)
	a.api = handlers.New(a.srv)
	a.reconciler = reconcile.New(cfg, a.srv.Reconciler)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startReconciler(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) external(ctx context.Context, cfg *config.Config) (service.External, error) {
	rdb, err := pinlimit.NewClient(ctx, cfg.RedisAddress)
	if err != nil {
		zap.L().Error("redis connection failed: ", zap.Error(err))
		return service.External{}, fmt.Errorf("can't connect to redis: %w", err)
	}
	a.closers = append(a.closers, rdb.Close)

	files, err := filestore.New(filestore.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return service.External{}, fmt.Errorf("can't build file store: %w", err)
	}
	if err := files.EnsureBucket(ctx); err != nil {
		zap.L().Error("bucket check failed: ", zap.Error(err))
		return service.External{}, fmt.Errorf("can't prepare bucket: %w", err)
	}

	notifier := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaNotifyTopic)
	a.closers = append(a.closers, notifier.Close)

	return service.External{
		Gateway:  gateway.New(cfg, clients.NewHTTPClient()),
		Notifier: notifier,
		Limiter:  pinlimit.New(rdb, cfg.PinMaxAttempts, cfg.PinLockWindow),
		Files:    files,
	}, nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router, auth.NewJWTService(a.cfg.JWTSecret))
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startReconciler(ctx context.Context) {
	a.reconciler.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.reconciler.Done()
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			zap.L().Error("close failed", zap.Error(err))
			if appErr == nil {
				appErr = err
			}
		}
	}

	return appErr
}
