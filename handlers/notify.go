package handlers

import (
	"log"
	"net/http"

	"dealership-api/notify"

	"github.com/gin-gonic/gin"
)

type NotifyRequest struct {
	Type    string  `json:"type" binding:"required"`
	User    string  `json:"user"`
	Vehicle string  `json:"vehicle"`
	Price   float64 `json:"price"`
	Colors  struct {
		Primary   string `json:"primary"`
		Secondary string `json:"secondary"`
	} `json:"colors"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// DiscordNotify posts an embed to the configured webhook. Delivery is
// best-effort: an unconfigured webhook still returns 200 so callers
// never have to care whether notifications are wired up.
func (h *Handler) DiscordNotify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var embed notify.Embed
	switch req.Type {
	case "new_order":
		embed = notify.NewOrderEmbed(notify.NewOrder{
			Customer:       req.User,
			Vehicle:        req.Vehicle,
			Price:          req.Price,
			PrimaryColor:   req.Colors.Primary,
			SecondaryColor: req.Colors.Secondary,
		})
	case "order_update":
		embed = notify.OrderUpdateEmbed(notify.OrderUpdate{
			OrderID: req.OrderID,
			Status:  req.Status,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification type"})
		return
	}

	if !h.webhook.Configured() {
		log.Println("notify: webhook URL not configured")
		c.JSON(http.StatusOK, gin.H{"message": "Webhook not configured"})
		return
	}

	if err := h.webhook.Send(embed); err != nil {
		log.Printf("notify: delivery failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}
