package main

import (
	"github.com/blues/ims/internal/config"
	"github.com/blues/ims/internal/database"
	"github.com/blues/ims/internal/event"
	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/logic"
	"github.com/blues/ims/internal/payment"
	"github.com/blues/ims/internal/router"
	"github.com/blues/ims/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else {
		l, err := logger.New(level)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 支付服务为占位实现，由外部支付模块替换
	provider := payment.NewStubProvider()
	investmentLogic := logic.NewInvestmentLogic(db, provider)

	// 初始化支付回调处理器
	processor, err := event.NewPaymentProcessor(investmentLogic, cfg.Event.PoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize payment processor: %v", err)
	}
	defer processor.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, investmentLogic, processor, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
