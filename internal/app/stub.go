package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/communities-gateway/internal/auth"
	"github.com/heartmarshall/communities-gateway/internal/config"
	"github.com/heartmarshall/communities-gateway/internal/forumstub"
	"github.com/heartmarshall/communities-gateway/internal/transport/middleware"
	"github.com/heartmarshall/communities-gateway/internal/transport/rest"
)

const rateLimiterCleanup = time.Minute

// NewJWTManager builds the token manager of the reference service.
func NewJWTManager(cfg config.StubConfig) *auth.JWTManager {
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
}

// NewStubHandler assembles the reference service: routes for every registry
// descriptor behind the middleware chain. The returned stop function releases
// background resources.
func NewStubHandler(cfg config.StubConfig, forum *forumstub.Forum, logger *slog.Logger) (http.Handler, func()) {
	forumHandler := rest.NewForumHandler(forum, logger)
	healthHandler := rest.NewHealthHandler(BuildVersion())
	router := rest.NewRouter(cfg.RoutesPrefix, rest.Handlers(forumHandler, healthHandler))

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}

	stop := func() {}
	if cfg.RateLimit > 0 {
		rl := middleware.NewRateLimiter(rateLimiterCleanup)
		mws = append(mws, rl.Limit(cfg.RateLimit))
		stop = rl.Stop
	}
	mws = append(mws, middleware.Auth(NewJWTManager(cfg)))

	return middleware.Chain(mws...)(router), stop
}

// RunStub serves the reference service until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func RunStub(ctx context.Context, cfg config.StubConfig, logger *slog.Logger) error {
	handler, stop := NewStubHandler(cfg, forumstub.New(logger), logger)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("reference service listening",
			slog.String("addr", srv.Addr),
			slog.String("routes_prefix", cfg.RoutesPrefix),
			slog.String("version", BuildVersion()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("reference service stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("reference service stopped")
	return nil
}
