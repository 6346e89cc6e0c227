package main

import (
	"net/http"
	"time"

	"finsim.backend/internal/interfaces/http/handlers"
	"finsim.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	profileHandler      *handlers.ProfileHandler
	ticketHandler       *handlers.TicketHandler
	userAuth            gin.HandlerFunc
	adminAuth           gin.HandlerFunc
	superAdminOnly      gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public + authed account management)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify", d.authHandler.VerifyOTP)
			auth.POST("/resend-otp", d.authHandler.ResendOTP)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/google", d.authHandler.GoogleLogin)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)

			auth.GET("/me", d.userAuth, d.authHandler.Me)
			auth.POST("/change-password", d.userAuth, d.authHandler.ChangePassword)
			auth.POST("/request-account-deletion", d.userAuth, d.authHandler.RequestAccountDeletion)
			auth.POST("/confirm-account-deletion", d.userAuth, d.authHandler.ConfirmAccountDeletion)
		}

		// Plan catalog (public read of active plans, admin management)
		plans := v1.Group("/subscription-plans")
		{
			plans.GET("", d.planHandler.ListActive)
			plans.GET("/all", d.adminAuth, d.planHandler.ListAll)
			plans.GET("/:id", d.planHandler.Get)
			plans.POST("", d.adminAuth, d.planHandler.Create)
			plans.PUT("/:id", d.adminAuth, d.planHandler.Update)
			plans.DELETE("/:id", d.adminAuth, d.planHandler.Delete)
		}

		// Subscription lifecycle (authed)
		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(d.userAuth)
		{
			subscriptions.POST("/purchase", d.subscriptionHandler.Purchase)
			subscriptions.POST("/extend", d.subscriptionHandler.Extend)
			subscriptions.POST("/downgrade", d.subscriptionHandler.Downgrade)
			subscriptions.POST("/cancel", d.subscriptionHandler.Cancel)
		}

		// Billing webhook (public, signature-verified, duplicate-shielded)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/stripe", middleware.WebhookIdempotency(), d.subscriptionHandler.HandleStripeWebhook)
		}

		// User profile (authed)
		users := v1.Group("/users")
		users.Use(d.userAuth)
		{
			users.GET("/profile", d.profileHandler.Get)
			users.POST("/profile", d.profileHandler.Upsert)
			users.PATCH("/profile", d.profileHandler.Patch)
		}

		// Support tickets (authed user create, admin management below)
		tickets := v1.Group("/tickets")
		tickets.Use(d.userAuth)
		{
			tickets.POST("", d.ticketHandler.Create)
		}

		// Admin console
		admin := v1.Group("/admin")
		{
			admin.POST("/login", d.adminHandler.Login)
			admin.POST("/refresh-token", d.adminHandler.Refresh)
			admin.POST("/forgot-password", d.adminHandler.ForgotPassword)
			admin.POST("/resend-otp", d.adminHandler.ResendOTP)
			admin.POST("/reset-password", d.adminHandler.ResetPassword)

			authed := admin.Group("")
			authed.Use(d.adminAuth)
			{
				authed.GET("/profile", d.adminHandler.GetProfile)
				authed.POST("/change-password", d.adminHandler.ChangePassword)

				authed.GET("/users", d.adminHandler.ListUsers)
				authed.GET("/users/:id", d.adminHandler.GetUser)
				authed.PUT("/users/:id/block", d.adminHandler.BlockUser)
				authed.PUT("/users/:id/unblock", d.adminHandler.UnblockUser)
				authed.POST("/users/:id/subscription/extend", d.adminHandler.ExtendUserSubscription)
				authed.POST("/users/:id/subscription/downgrade", d.adminHandler.DowngradeUserSubscription)
				authed.POST("/users/:id/subscription/cancel", d.adminHandler.CancelUserSubscription)

				authed.GET("/tickets", d.ticketHandler.List)
				authed.GET("/tickets/:id", d.ticketHandler.Get)
				authed.PUT("/tickets/:id/reply", d.ticketHandler.Reply)
				authed.PUT("/tickets/:id/close", d.ticketHandler.Close)

				// Admin management re-checks the stored role on every call
				admins := authed.Group("/admins")
				admins.Use(d.superAdminOnly)
				{
					admins.POST("", d.adminHandler.CreateAdmin)
					admins.GET("", d.adminHandler.ListAdmins)
					admins.PUT("/:id", d.adminHandler.UpdateAdmin)
					admins.DELETE("/:id", d.adminHandler.DeleteAdmin)
				}
			}
		}
	}
}
