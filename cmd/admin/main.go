package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"photostudio/internal/app"
	"photostudio/internal/core/server"
	"photostudio/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.Boot(ctx, os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin api boot failed:", err)
		os.Exit(1)
	}
	defer rt.Close()
	log, cfg := rt.Log, rt.Cfg

	// 路由（管理端）
	r := router.NewAdminEngine(rt.Deps)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("admin_v1", "http://"+addr+"/admin/v1"),
	)

	errc := make(chan error, 1)
	go func() { errc <- server.StartHTTP(srv, log) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Error("admin api start FAILED", zap.Error(err))
		}
	case <-ctx.Done():
		server.Shutdown(srv, log, 10*time.Second)
	}
}
