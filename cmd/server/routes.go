package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"liberty-staking.backend/internal/interfaces/http/handlers"
	"liberty-staking.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	investmentHandler *handlers.InvestmentHandler
	referralHandler   *handlers.ReferralHandler
	stakingHandler    *handlers.StakingHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/nonce", d.authHandler.Nonce)
			auth.POST("/verify", d.authHandler.Verify)
			auth.POST("/signup", d.authHandler.Signup)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/profile", d.userHandler.Profile)
			users.GET("/dashboard-stats", d.userHandler.DashboardStats)
		}

		// Investment routes (protected)
		investments := v1.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.POST("/create", d.investmentHandler.Create)
			investments.GET("", d.investmentHandler.List)
		}

		// Referral routes (protected)
		referrals := v1.Group("/referrals")
		referrals.Use(d.authMiddleware)
		{
			referrals.GET("/stats", d.referralHandler.Stats)
			referrals.GET("/earnings", d.referralHandler.Earnings)
			referrals.GET("/team", d.referralHandler.Team)
			referrals.POST("/claim", d.referralHandler.Claim)
			referrals.POST("/claim/confirm", d.referralHandler.ConfirmClaim)
		}

		// Staking contract reads (public)
		staking := v1.Group("/staking")
		{
			staking.GET("/epoch", d.stakingHandler.Epoch)
			staking.GET("/apr", d.stakingHandler.APR)
			staking.GET("/stats", d.stakingHandler.Stats)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", d.adminHandler.Dashboard)
			admin.GET("/matured-orders", d.adminHandler.MaturedOrders)
			admin.GET("/users", d.adminHandler.Users)
			admin.GET("/treasury", d.adminHandler.Treasury)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "liberty-staking-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
