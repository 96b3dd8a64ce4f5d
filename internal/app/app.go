package app

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"quiz-service/internal/database"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	pingTimeout       = 5 * time.Second
)

type backgroundJob func(context.Context) error

type App interface {
	Logger() *zap.Logger
	DB() *sqlx.DB
	Router() gin.IRouter
	AddBackgroundJob(backgroundJob)
	Run() error
}

func New(ctx context.Context, cfg Config) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	gin.SetMode(gin.ReleaseMode)

	application := &app{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	application.registerHTTPServer()
	application.registerGRPCServer()
	application.registerHealthProbe()
	application.AddBackgroundJob(func(ctx context.Context) error {
		<-ctx.Done()
		return errors.Wrap(db.Close(), "could not close database handle")
	})
	return application, nil
}

type app struct {
	ctx    context.Context
	logger *zap.Logger
	cfg    Config
	db     *sqlx.DB
	router *gin.Engine
	grpc   *grpc.Server
	health *health.Server
	jobs   []backgroundJob
}

func (app *app) Run() error {
	app.Logger().Info("started application")
	defer app.Logger().Sync() //nolint:errcheck

	var wg sync.WaitGroup
	errChannel := make(chan error, len(app.jobs))

	for _, job := range app.jobs {
		wg.Add(1)
		go func(job backgroundJob) {
			defer wg.Done()
			errChannel <- job(app.ctx)
		}(job)
	}

	select {
	case <-app.ctx.Done():
		wg.Wait()
		close(errChannel)
		errs := make([]error, 0, len(errChannel))
		for err := range errChannel {
			errs = append(errs, err)
		}
		return multierr.Combine(errs...)
	case err := <-errChannel:
		return err
	}
}

func (app *app) AddBackgroundJob(job backgroundJob) {
	app.jobs = append(app.jobs, job)
}

func (app *app) Logger() *zap.Logger {
	return app.logger
}

func (app *app) DB() *sqlx.DB {
	return app.db
}

func (app *app) Router() gin.IRouter {
	return app.router
}

func (app *app) registerGRPCServer() {
	app.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(grpcRequestIDInterceptor(app.logger)))
	app.health = health.NewServer()
	healthpb.RegisterHealthServer(app.grpc, app.health)

	app.AddBackgroundJob(func(ctx context.Context) error {
		listener, listenErr := net.Listen("tcp", app.cfg.GRPCPort)
		if listenErr != nil {
			return errors.Wrap(listenErr, "could not open GRPC port to serve")
		}
		app.Logger().Info("starting GRPC server", zap.String("addr", app.cfg.GRPCPort))
		if err := app.grpc.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return errors.Wrap(err, "GRPC server error")
		}
		return nil
	})
	app.AddBackgroundJob(func(ctx context.Context) error {
		<-ctx.Done()
		app.health.Shutdown()
		app.grpc.GracefulStop()
		return nil
	})
}

func (app *app) registerHTTPServer() {
	app.router = newRouter(app.logger, app.db)
	httpServer := &http.Server{
		Handler:           app.router,
		Addr:              app.cfg.HTTPPort,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	app.AddBackgroundJob(func(ctx context.Context) error {
		app.Logger().Info("starting HTTP server", zap.String("addr", app.cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server error")
		}
		return nil
	})
	app.AddBackgroundJob(func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
}

// registerHealthProbe keeps the gRPC health status and the db_up gauge in
// line with database reachability.
func (app *app) registerHealthProbe() {
	app.AddBackgroundJob(func(ctx context.Context) error {
		ticker := time.NewTicker(app.cfg.HealthInterval)
		defer ticker.Stop()
		for {
			app.probeDatabase(ctx)
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func (app *app) probeDatabase(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := database.Ping(pingCtx, app.db); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		dbUp.Set(0)
		app.Logger().Warn("database health probe failed", zap.Error(err))
	} else {
		dbUp.Set(1)
	}
	app.health.SetServingStatus("", status)
}

func newRouter(logger *zap.Logger, db *sqlx.DB) *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware(), accessLogMiddleware(logger), recoveryMiddleware(logger))

	router.NoRoute(func(c *gin.Context) {
		WriteError(c, logger, http.StatusNotFound, errors.New("not found"))
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			WriteError(c, logger, http.StatusServiceUnavailable, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
