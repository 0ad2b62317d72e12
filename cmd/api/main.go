package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"compass-backend/internal/core/auth"
	"compass-backend/internal/core/cache"
	"compass-backend/internal/core/config"
	"compass-backend/internal/core/database"
	"compass-backend/internal/core/logger"
	"compass-backend/internal/core/server"
	"compass-backend/internal/identity"
	"compass-backend/internal/repo"
	"compass-backend/internal/service"
	"compass-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := newLogger(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	repos := repo.New(db)

	if cfg.DB.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := repos.AutoMigrate(ctx)
		cancel()
		if err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	var rc *cache.Cache
	if cfg.Redis.Enabled {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, profile reads go straight to the identity provider", zap.Error(err))
		}
		cancel()
	}
	idp := identity.NewCached(identity.NewAuth0(identity.Auth0Options{
		BaseURL:      cfg.Identity.BaseURL,
		ClientID:     cfg.Identity.ClientID,
		ClientSecret: cfg.Identity.ClientSecret,
		Audience:     cfg.Identity.Audience,
		Timeout:      cfg.Identity.Timeout(),
	}, log.Named("identity")), rc, cfg.Identity.CacheTTL(), log)

	jwter, err := auth.New(cfg.JWT.Secret, cfg.JWT.PublicKeyPEM, cfg.JWT.Issuer, cfg.JWT.Audience,
		time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatal("jwt setup", zap.Error(err))
	}

	svc := service.New(repos, idp, repos, service.Options{
		CommitID:           cfg.App.CommitID,
		EnforceRatingRange: cfg.Ratings.EnforceRange,
	}, log)
	mods := router.Handlers(svc, log)

	api := server.BuildServer(
		server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port),
		router.NewAPIEngine(log, cfg.App.HTTP, jwter, repos.Users, mods...),
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)
	ops := server.BuildServer(
		server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port),
		router.NewAdminEngine(log, mods...),
		5*time.Second, 10*time.Second, 60*time.Second,
		log,
	)

	for _, srv := range []*http.Server{api, ops} {
		go func() {
			if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("http start FAILED", zap.String("addr", srv.Addr), zap.Error(err))
			}
		}()
	}
	log.Info("compass api started",
		zap.String("api", api.Addr),
		zap.String("ops", ops.Addr),
		zap.String("commit", cfg.App.CommitID),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range []*http.Server{api, ops} {
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	log.Info("compass api stopped gracefully")
}

func newLogger(c config.Log) (*zap.Logger, func()) {
	if c.Rotate.Enable {
		return logger.NewWithRotate(c.Level, c.JSON, c.Rotate.Filename,
			c.Rotate.MaxSizeMB, c.Rotate.MaxBackups, c.Rotate.MaxAgeDays, c.Rotate.Compress)
	}
	return logger.New(c.Level, c.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
