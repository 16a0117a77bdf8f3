package handlers

import (
	"log"
	"net/http"

	"dealership-api/middleware"
	"dealership-api/models"
	"dealership-api/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// orderCountdown is the number of seconds the customer is told to wait
// at the pickup point after submitting an order.
const orderCountdown = 600

type SubmitOrderRequest struct {
	VehicleID       int     `json:"vehicleId" binding:"required"`
	VehicleName     string  `json:"vehicleName" binding:"required"`
	Price           float64 `json:"price" binding:"required"`
	PrimaryColor    string  `json:"primaryColor"`
	SecondaryColor  string  `json:"secondaryColor"`
	PearlColor      string  `json:"pearlColor"`
	SpecialRequests string  `json:"specialRequests"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// SubmitOrder creates a pending order owned by the caller.
func (h *Handler) SubmitOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		ID:              uuid.NewString(),
		DiscordID:       claims.DiscordID,
		CustomerName:    claims.Username,
		VehicleID:       req.VehicleID,
		VehicleName:     req.VehicleName,
		Price:           req.Price,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		PearlColor:      req.PearlColor,
		SpecialRequests: req.SpecialRequests,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
	}

	if err := h.db.Create(&order).Error; err != nil {
		log.Printf("orders: failed to create order for %s: %v", claims.DiscordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		return
	}

	// Best-effort channel announcement; an unreachable webhook never
	// fails the order.
	if h.webhook.Configured() {
		embed := notify.NewOrderEmbed(notify.NewOrder{
			Customer:       claims.Username,
			Vehicle:        order.VehicleName,
			Price:          order.Price,
			PrimaryColor:   order.PrimaryColor,
			SecondaryColor: order.SecondaryColor,
		})
		if err := h.webhook.Send(embed); err != nil {
			log.Printf("orders: webhook notification failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order submitted successfully",
		"orderId":   order.ID,
		"countdown": orderCountdown,
	})
}

// PurchaseHistory returns the caller's orders, newest first.
func (h *Handler) PurchaseHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var orders []models.Order
	err := h.db.Where("discord_id = ?", claims.DiscordID).
		Order("created_at desc").Find(&orders).Error
	if err != nil {
		log.Printf("orders: failed to fetch history for %s: %v", claims.DiscordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase history"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
