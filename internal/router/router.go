package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jambohub/jambohub/internal/handlers"
	"github.com/jambohub/jambohub/internal/middleware"
	"github.com/jambohub/jambohub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", handlers.UploadDir())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/change-password", middleware.AuthMiddleware(), handlers.ChangePassword)
		}

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/channels", handlers.ListChannels)
			authed.GET("/channels/:channel_id/messages", handlers.ListMessages)
			authed.POST("/channels/:channel_id/messages", handlers.CreateMessage)
			authed.POST("/messages/:message_id/pin", handlers.TogglePin)

			authed.GET("/info-cards", handlers.ListInfoCards)
			authed.GET("/stats", handlers.Stats)
			authed.POST("/upload", handlers.Upload)
			authed.PUT("/settings/notifications", handlers.UpdateNotificationSettings)

			authed.GET("/push/vapid-public-key", handlers.VapidPublicKey)
			authed.POST("/push/subscribe", handlers.Subscribe)
			authed.POST("/push/unsubscribe", handlers.Unsubscribe)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRoles(types.RoleAdmin))
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.POST("/users", handlers.AdminCreateUser)
			admin.PUT("/users/:user_id", handlers.AdminUpdateUser)
			admin.DELETE("/users/:user_id", handlers.AdminDeleteUser)
			admin.POST("/users/:user_id/reset-password", handlers.AdminResetPassword)

			admin.GET("/units", handlers.AdminListUnits)
			admin.POST("/units", handlers.AdminCreateUnit)
			admin.PUT("/units/:unit_id", handlers.AdminUpdateUnit)
			admin.DELETE("/units/:unit_id", handlers.AdminDeleteUnit)

			admin.GET("/channels", handlers.AdminListChannels)
			admin.PUT("/channels/:channel_id", handlers.AdminUpdateChannel)

			admin.GET("/info-cards", handlers.AdminListInfoCards)
			admin.POST("/info-cards", handlers.AdminCreateInfoCard)
			admin.PUT("/info-cards/:card_id", handlers.AdminUpdateInfoCard)
			admin.DELETE("/info-cards/:card_id", handlers.AdminDeleteInfoCard)
		}
	}

	return r
}
