package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/config"
	"github.com/sasamaylina/responsi-paw/internal/handler"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"github.com/sasamaylina/responsi-paw/internal/middleware"
	"github.com/sasamaylina/responsi-paw/internal/storage"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, store storage.ImageStore, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.MaxMultipartMemory = cfg.Upload.MaxSize

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "responsi-paw",
		})
	})

	// 上传的活动图片
	r.Static("/uploads", cfg.Upload.Dir)

	campaignLogic := logic.NewCampaignLogic(db, store)

	authHandler := handler.NewAuthHandler(db, cfg.Auth)
	userHandler := handler.NewUserHandler(db)
	campaignHandler := handler.NewCampaignHandler(db, store)
	donationHandler := handler.NewDonationHandler(db, campaignLogic, cfg.Donation.MinAmount)
	dashboardHandler := handler.NewDashboardHandler(db)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(cfg.Auth.JWTSecret), authHandler.Logout)
		}

		// 管理端路由，仅限管理员
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(cfg.Auth.JWTSecret), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", dashboardHandler.AdminDashboard)

			admin.GET("/campaigns", campaignHandler.GetCampaigns)
			admin.POST("/campaigns", campaignHandler.CreateCampaign)
			admin.GET("/campaigns/:id", campaignHandler.GetCampaign)
			admin.PUT("/campaigns/:id", campaignHandler.UpdateCampaign)
			admin.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)

			admin.GET("/users", userHandler.GetUsers)
			admin.GET("/users/:id", userHandler.GetUser)
			admin.PUT("/users/:id", userHandler.UpdateUser)
			admin.DELETE("/users/:id", userHandler.DeleteUser)

			admin.GET("/donations", donationHandler.GetAllDonations)
		}

		// 捐款端路由，登录即可访问
		donor := v1.Group("/donor")
		donor.Use(middleware.RequireAuth(cfg.Auth.JWTSecret))
		{
			donor.GET("/dashboard", donationHandler.DonorDashboard)
			donor.GET("/campaigns", campaignHandler.GetActiveCampaigns)
			donor.GET("/campaigns/:id", campaignHandler.GetCampaign)
			donor.POST("/campaigns/:id/donate", donationHandler.Donate)
			donor.GET("/donations", donationHandler.GetMyDonations)
			donor.PUT("/donations/:id", donationHandler.UpdateDonation)
			donor.DELETE("/donations/:id", donationHandler.DeleteDonation)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
