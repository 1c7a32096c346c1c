package main

import (
	"log"
	"os"

	"pref-go/internal/config"
	"pref-go/internal/models"
	"pref-go/internal/router"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置（从项目根目录读取）
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化Redis（可选，仅用于生成接口的并发限制）
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
	} else {
		logger.Info("未配置Redis，生成接口并发限制已禁用")
	}

	// API密钥缺失不阻止启动，调用生成接口时返回配置错误
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("未配置OPENAI_API_KEY，生成接口将不可用")
	}

	// 设置路由
	r := router.SetupRouter(cfg, logger, db, redisClient)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
