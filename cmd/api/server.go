package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mw "github.com/5w1tchy/bookshelf-api/internal/api/middlewares"
	"github.com/5w1tchy/bookshelf-api/internal/api/router"
	"github.com/5w1tchy/bookshelf-api/internal/config"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/5w1tchy/bookshelf-api/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/bookshelf-api/internal/security/jwt"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Default()
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlconnect.ConnectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("connected to database")

	if cfg.AutoMigrate {
		if err := sqlconnect.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	maxYear := cfg.EffectiveMaxYear(time.Now())
	v, err := validate.BookValidator(maxYear)
	if err != nil {
		return err
	}
	log.WithField("max_year", maxYear).Debug("book schemas compiled")

	var opts router.Options
	if cfg.AuthJWTSecret != "" {
		opts.WriteGuard = mw.RequireBearer(jwtutil.NewVerifier(cfg.AuthJWTSecret, cfg.AuthClockSkew))
		log.Info("write guard enabled for POST/PUT/DELETE /books")
	}

	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	var rateLimit mw.Middleware
	if cfg.RedisURL != "" {
		rdb, err := connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		key := mw.PerIPKey("tb", mw.NewClientIP(proxies))
		rateLimit = mw.NewTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, key).Middleware
		log.Info("connected to Redis, rate limiting enabled")
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           withMiddleware(router.Router(db, v, opts), cfg, rateLimit),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("server is running on port %d", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// withMiddleware wraps app in the request chain. AccessLog sits outside
// Recovery so requests that panic are still logged.
func withMiddleware(app http.Handler, cfg config.Config, rateLimit mw.Middleware) http.Handler {
	return mw.Apply(
		app,
		mw.RequestID,
		mw.AccessLog,
		mw.Recovery,
		mw.ResponseTime(cfg.SlowRequestThreshold),
		mw.SecurityHeaders(cfg.StrictSecurity),
		mw.Cors(cfg.CORSAllowedOrigins),
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.Compression,
		rateLimit,
	)
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url) // e.g. rediss://default:<token>@host:port
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(url, "rediss://") && opt.TLSConfig == nil {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 1 * time.Second
	opt.WriteTimeout = 1 * time.Second
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
