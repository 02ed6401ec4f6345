package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sasamaylina/responsi-paw/internal/config"
	"github.com/sasamaylina/responsi-paw/internal/database"
	"github.com/sasamaylina/responsi-paw/internal/logger"
	"github.com/sasamaylina/responsi-paw/internal/router"
	"github.com/sasamaylina/responsi-paw/internal/scheduler"
	"github.com/sasamaylina/responsi-paw/internal/storage"
)

func main() {
	// 加载 .env（不存在时忽略）
	_ = godotenv.Load()

	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化图片存储
	store, err := storage.NewLocalImageStore(cfg.Upload)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, store, cfg)

	// 启动定时任务
	scheduler.Start(db, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			log.Fatalf("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
