package router

import (
	"time"

	"pref-go/internal/config"
	"pref-go/internal/handler"
	"pref-go/internal/middleware"
	"pref-go/internal/repository"
	"pref-go/internal/service"
	"pref-go/pkg/llm_caller"
	"pref-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "成对偏好采集系统 API",
			"version": "1.0.0",
		})
	})

	// 初始化补全客户端
	caller := llm_caller.NewCaller(
		cfg.OpenAI.APIBase,
		cfg.OpenAI.APIKey,
		cfg.OpenAI.GetTimeout(),
		cfg.OpenAI.MaxRetries,
	)

	// 初始化Repository和Service
	promptRepo := repository.NewPromptRepository(db)
	promptService := service.NewPromptService(promptRepo, caller, cfg.OpenAI.DefaultModel)

	// 初始化Handler
	promptHandler := handler.NewPromptHandler(promptService, logger)

	// 未配置Redis时不启用并发限制
	var limiter *redis_limiter.RedisLimiter
	if cfg.Redis.Enabled() && redisClient != nil {
		limiter = redis_limiter.NewRedisLimiter(
			redisClient,
			cfg.Redis.MaxConcurrentGenerations,
			"pref:concurrency:",
			60*time.Second,
		)
	}

	// API路由组
	api := r.Group("/api")
	{
		prompts := api.Group("/prompts")
		{
			prompts.POST("/generate", middleware.ConcurrencyLimit(limiter, "generate"), promptHandler.Generate)
			prompts.POST("/:id/record-preference", promptHandler.RecordPreference)

			prompts.GET("/export-training-data", promptHandler.ExportTrainingData)
			prompts.GET("/export-training-data/download", promptHandler.DownloadTrainingData)
			prompts.GET("/stats", promptHandler.Stats)

			prompts.GET("", promptHandler.ListPrompts)
			prompts.GET("/:id", promptHandler.GetPrompt)
			prompts.DELETE("/:id", promptHandler.DeletePrompt)
		}
	}

	return r
}
