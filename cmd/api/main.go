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
		fmt.Fprintln(os.Stderr, "user api boot failed:", err)
		os.Exit(1)
	}
	defer rt.Close()
	log, cfg := rt.Log, rt.Cfg

	// 路由（用户端）
	r := router.NewAPIEngine(rt.Deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	errc := make(chan error, 1)
	go func() { errc <- server.StartHTTP(srv, log) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Error("user api start FAILED", zap.Error(err))
		}
	case <-ctx.Done():
		server.Shutdown(srv, log, 10*time.Second)
	}
}
