package handlers

import (
	"errors"
	"log"
	"net/http"

	"dealership-api/middleware"
	"dealership-api/models"
	"dealership-api/notify"
	"dealership-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminOrders returns all orders with the owning user joined in,
// newest first — admin only.
func (h *Handler) AdminOrders(c *gin.Context) {
	var orders []models.Order
	err := h.db.Preload("User").Order("created_at desc").Find(&orders).Error
	if err != nil {
		log.Printf("admin: failed to fetch orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

type UpdateOrderStatusRequest struct {
	OrderID string             `json:"orderId" binding:"required"`
	Status  models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the status state machine.
// The status must be a known value and the transition must be legal;
// both are checked before anything is written.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var order models.Order
	if err := h.db.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("admin: failed to load order %s: %v", req.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"status":      req.Status,
		"approved_by": claims.DiscordID,
	}
	if err := h.db.Model(&order).Updates(updates).Error; err != nil {
		log.Printf("admin: failed to update order %s: %v", req.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	order.Status = req.Status
	order.ApprovedBy = claims.DiscordID

	if h.webhook.Configured() {
		embed := notify.OrderUpdateEmbed(notify.OrderUpdate{
			OrderID: order.ID,
			Status:  string(req.Status),
		})
		if err := h.webhook.Send(embed); err != nil {
			log.Printf("admin: webhook notification failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GuildRoles lists every role defined in the guild next to the configured
// role mapping — a diagnostic for wiring up role IDs.
func (h *Handler) GuildRoles(c *gin.Context) {
	guildRoles, err := h.discord.FetchGuildRoles(c.Request.Context())
	if err != nil {
		log.Printf("admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guild roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"guildId": h.cfg.DiscordGuildID,
		"roles":   guildRoles,
		"configured": gin.H{
			"owner":    h.cfg.RoleOwnerID,
			"manager":  h.cfg.RoleManagerID,
			"customer": h.cfg.RoleCustomerID,
		},
	})
}
