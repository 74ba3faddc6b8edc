package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zenweb/internal/config"
	"zenweb/internal/router"
	"zenweb/internal/service"
	"zenweb/internal/storage"
	"zenweb/internal/store"
	"zenweb/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// storage
	ctx := context.Background()
	var kv storage.KV
	switch cfg.StorageDriver {
	case "memory":
		kv = storage.NewMemory()
	case "postgres":
		pg, err := storage.OpenPostgres(ctx, cfg.DBURL)
		if err != nil {
			l.Fatal().Err(err).Msg("postgres connect failed")
		}
		defer pg.Close()
		kv = pg
	default:
		db, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			l.Fatal().Err(err).Msg("sqlite open failed")
		}
		defer db.Close()
		kv = db
	}

	// seed admin through the normal path
	auth := service.NewAuthService(store.NewUsers(kv), cfg.SessionSecret)
	if err := auth.EnsureAdmin(ctx, l, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword); err != nil {
		l.Fatal().Err(err).Msg("admin seed failed")
	}

	// http
	r := router.New(l, kv, cfg, service.NewLogSMSSender(l))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("driver", cfg.StorageDriver).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(sctx)
	l.Info().Msg("shutdown complete")
}
