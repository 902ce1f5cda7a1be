package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"photostudio/internal/core/cache"
	"photostudio/internal/core/config"
	"photostudio/internal/core/database"
	"photostudio/internal/core/logger"
	"photostudio/internal/repo"
	"photostudio/internal/transport/http/router"
)

// Runtime 两个进程共用的启动结果
type Runtime struct {
	Cfg  *config.Config
	Log  *zap.Logger
	DB   *gorm.DB
	Deps *router.Deps

	closers []func()
}

// Close 逆序释放
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxMB, cfg.Log.Backup, cfg.Log.Days, true)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

// Boot 配置 → 日志 → DB（可选迁移）→ Redis（可选）→ 依赖组装
func Boot(ctx context.Context, cfgPath string) (*Runtime, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	rt := &Runtime{Cfg: cfg}

	log, cleanup := NewLogger(cfg)
	rt.Log = log
	rt.closers = append(rt.closers, cleanup)
	rt.closers = append(rt.closers, logger.RedirectStdLog(log, zapcore.InfoLevel))

	if cfg.JWT.Secret == "your-secret-key-change-in-production" {
		log.Warn("jwt secret is the built-in default; set APP_JWT_SECRET")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                log,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	rt.DB = db
	rt.closers = append(rt.closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			rt.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		log.Info("automigrate done")
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c, err = cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			rt.Close()
			return nil, err
		}
		c.Log = log
		rt.closers = append(rt.closers, func() { _ = c.Close() })
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	rt.Deps = router.Wire(log, cfg, db, c)
	return rt, nil
}
