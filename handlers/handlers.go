package handlers

import (
	"dealership-api/config"
	"dealership-api/discord"
	"dealership-api/notify"

	"gorm.io/gorm"
)

// Handler carries the dependencies every endpoint needs. Constructed once
// in main; no ambient globals.
type Handler struct {
	cfg     *config.Config
	db      *gorm.DB
	discord *discord.Client
	webhook *notify.Webhook
}

func New(cfg *config.Config, db *gorm.DB, dc *discord.Client, webhook *notify.Webhook) *Handler {
	return &Handler{
		cfg:     cfg,
		db:      db,
		discord: dc,
		webhook: webhook,
	}
}
