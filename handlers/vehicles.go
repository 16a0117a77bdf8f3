package handlers

import (
	"log"
	"net/http"

	"dealership-api/models"
	"dealership-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListVehicles returns all active vehicles, cheapest first (public).
// If the datastore is unreachable the static showroom list is served
// instead — this endpoint never returns a 5xx.
func (h *Handler) ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	err := h.db.Where("is_active = ?", true).Order("price asc").Find(&vehicles).Error
	if err != nil {
		log.Printf("vehicles: datastore unavailable, serving fallback list: %v", err)
		c.JSON(http.StatusOK, models.DefaultVehicles)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{string(models.StatusRejected), string(models.StatusDelivered)},
		"description":     "Vehicle Order Lifecycle State Machine",
	})
}
