package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logging"
	"github.com/sitecms/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDriver, cfg.DSN()); err != nil {
		logger.Fatal("failed to initialize database", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}

	if err := db.EnsureUser(cfg.SuperRootEmail, cfg.SuperRootPassword); err != nil {
		logger.Fatal("failed to ensure root user", zap.Error(err))
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, cfg, logger)
	logger.Info("server starting", zap.String("addr", cfg.ListenAddr), zap.String("site", cfg.SiteName))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
