package routes

import (
	adminapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/admin"
	authapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/auth"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/api/billing"
	contactapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/contact"
	conversionapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/conversion"
	plansapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/plans"
	stripewebhooks "github.com/iamgjek/Shopee2Multi-sub000/internal/api/stripewebhook"
	usersapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/users"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public, sanitized
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)
	public.GET("/plans", plansapi.ListPlans)
	public.POST("/contact", contactapi.Submit)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	// Conversion pipeline: active accounts only
	conv := auth.Group("/conversion")
	conv.Use(middleware.RequireActiveAccount())
	conv.POST("/convert", conversionapi.Convert)
	conv.GET("/download/:taskId", conversionapi.Download)
	conv.GET("/history", conversionapi.History)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.PUT("/user/:id", adminapi.UpdateUser)
	admin.GET("/tasks", adminapi.ListAllTasks)
	admin.GET("/usage", adminapi.ListAllUsage)
	admin.GET("/contact", adminapi.ListContactSubmissions)
	admin.PUT("/contact/:id/status", contactapi.UpdateStatus)
	admin.POST("/contact/:id/reply", contactapi.Reply)
}
