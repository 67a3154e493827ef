package routes

import (
	"net/http"
	"time"

	"dashboard-service/internal/achievement"
	"dashboard-service/internal/api/handlers"
	"dashboard-service/internal/api/middleware"
	"dashboard-service/internal/leaderboard"
	"dashboard-service/internal/market"
	"dashboard-service/internal/reward"
	"dashboard-service/internal/task"
	"dashboard-service/internal/user"

	"github.com/gin-gonic/gin"
)

// Router wires all HTTP and WebSocket endpoints onto a gin engine.
type Router struct {
	userHandler        *user.UserHandler
	marketHandler      *market.MarketHandler
	taskHandler        *task.TaskHandler
	achievementHandler *achievement.AchievementHandler
	rewardHandler      *reward.RewardHandler
	leaderboardHandler *leaderboard.LeaderboardHandler
	wsHandler          *handlers.WSHandler

	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimitMiddleware
}

func NewRouter(
	userHandler *user.UserHandler,
	marketHandler *market.MarketHandler,
	taskHandler *task.TaskHandler,
	achievementHandler *achievement.AchievementHandler,
	rewardHandler *reward.RewardHandler,
	leaderboardHandler *leaderboard.LeaderboardHandler,
	wsHandler *handlers.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		userHandler:        userHandler,
		marketHandler:      marketHandler,
		taskHandler:        taskHandler,
		achievementHandler: achievementHandler,
		rewardHandler:      rewardHandler,
		leaderboardHandler: leaderboardHandler,
		wsHandler:          wsHandler,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
	}
}

func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	v1 := engine.Group("/api/v1")

	v1.GET("/ws", r.wsHandler.HandleWebSocket)

	auth := v1.Group("/auth")
	auth.Use(r.rateLimiter.RateLimitIP(10, time.Minute))
	{
		auth.POST("/register", r.userHandler.Register)
		auth.POST("/login", r.userHandler.Login)
	}

	// Read-only catalog endpoints stay public.
	v1.GET("/markets", r.marketHandler.ListMarkets)
	v1.GET("/markets/:id", r.marketHandler.GetMarket)
	v1.GET("/tasks", r.taskHandler.ListTasks)
	v1.GET("/tasks/:id", r.taskHandler.GetTask)
	v1.GET("/achievements", r.achievementHandler.ListAchievements)
	v1.GET("/achievements/:id", r.achievementHandler.GetAchievement)
	v1.GET("/leaderboard", r.leaderboardHandler.GetLeaderboard)

	protected := v1.Group("")
	protected.Use(r.authMiddleware.RequireAuth())
	{
		users := protected.Group("/users")
		{
			users.GET("/me", r.userHandler.GetProfile)
			users.GET("/:id", r.userHandler.GetUser)
			users.PUT("/me", r.userHandler.UpdateProfile)
			users.PUT("/me/wallet", r.userHandler.UpdateWallet)
			users.POST("/me/avatar", r.rateLimiter.RateLimit(5, time.Minute), r.userHandler.UploadAvatar)
		}

		markets := protected.Group("/markets")
		{
			markets.POST("", r.authMiddleware.RequireRole(user.RoleValidator, user.RoleAdmin), r.marketHandler.CreateMarket)
			markets.POST("/predictions", r.rateLimiter.RateLimit(30, time.Minute), r.marketHandler.PlacePrediction)
			markets.GET("/predictions/me", r.marketHandler.ListMyPredictions)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("", r.authMiddleware.RequireRole(user.RoleValidator), r.taskHandler.CreateTask)
			tasks.POST("/:id/start", r.taskHandler.StartTask)
			tasks.PUT("/:id/progress", r.taskHandler.UpdateProgress)
			tasks.GET("/me", r.taskHandler.ListMyTasks)
		}

		protected.POST("/achievements", r.authMiddleware.RequireRole(user.RoleAdmin), r.achievementHandler.CreateAchievement)
		protected.GET("/rewards/me", r.rewardHandler.ListMyRewards)
	}
}
