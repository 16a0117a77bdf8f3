package routes

import (
	"dealership-api/config"
	"dealership-api/handlers"
	"dealership-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/auth", h.Login)
	r.GET("/vehicles", h.ListVehicles)
	r.GET("/state-machine", h.GetStateMachineInfo)
	r.POST("/discord-notify", h.DiscordNotify)

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.GET("/verify-auth", h.VerifyAuth)
		auth.POST("/submit-order", h.SubmitOrder)
		auth.GET("/purchase-history", h.PurchaseHistory)
	}

	// ── Admin routes (owner or manager) ────────────────────────────
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.AdminRequired())
	{
		admin.GET("/admin-orders", h.AdminOrders)
		admin.POST("/update-order-status", h.UpdateOrderStatus)
		admin.GET("/admin/guild-roles", h.GuildRoles)
	}
}
