package router

import (
	"github.com/blues/ims/internal/config"
	"github.com/blues/ims/internal/event"
	"github.com/blues/ims/internal/handler"
	"github.com/blues/ims/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, investmentLogic *logic.InvestmentLogic, processor *event.PaymentProcessor, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "investment-marketplace-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目与融资配置（需要认证）
		projectHandler := handler.NewProjectHandler(db)
		fundingHandler := handler.NewFundingHandler(db)
		projects := v1.Group("/projects", identityMiddleware())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/publish", projectHandler.PublishProject)
			projects.PUT("/:id/funding", fundingHandler.SetFunding)
			projects.GET("/:id/funding", fundingHandler.GetFunding)
			projects.PUT("/:id/links", fundingHandler.SetLinks)
			projects.GET("/:id/links", fundingHandler.GetLinks)
		}

		// 投资（需要认证）
		investmentHandler := handler.NewInvestmentHandler(investmentLogic)
		investments := v1.Group("/investments", identityMiddleware())
		{
			investments.POST("", investmentHandler.CreateInvestment)
			investments.GET("/dashboard", investmentHandler.GetInvestorDashboard)
			investments.GET("/:id", investmentHandler.GetInvestment)
			investments.PUT("/:id/status", investmentHandler.UpdateInvestmentStatus)
		}

		// 支付回调（由支付服务调用）
		webhookHandler := handler.NewWebhookHandler(processor)
		v1.POST("/webhooks/payment", webhookHandler.HandlePaymentEvent)

		// 投资市场（公开）
		marketplaceHandler := handler.NewMarketplaceHandler(db)
		marketplace := v1.Group("/marketplace")
		{
			marketplace.GET("/projects", marketplaceHandler.GetMarketplaceProjects)
			marketplace.GET("/projects/:id", marketplaceHandler.GetMarketplaceProject)
		}

		// 页面构建器（需要认证）
		builderHandler := handler.NewBuilderHandler()
		pages := v1.Group("/builder/pages", identityMiddleware())
		{
			pages.POST("", builderHandler.CreatePage)
			pages.GET("/:id", builderHandler.GetPage)
			pages.POST("/:id/components", builderHandler.AddComponent)
			pages.PUT("/:id/components/:componentId", builderHandler.UpdateComponent)
			pages.DELETE("/:id/components/:componentId", builderHandler.DeleteComponent)
			pages.POST("/:id/export", builderHandler.ExportPage)
		}
	}

	return r
}

// identityMiddleware 从外部认证网关注入的请求头中取出用户标识
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetHeader("X-User-Id")
		if userId == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "未认证"})
			return
		}
		c.Set("userId", userId)
		c.Next()
	}
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-User-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
