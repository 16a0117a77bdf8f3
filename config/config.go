package config

import (
	"os"
	"strconv"
	"time"

	"dealership-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds every knob the service reads from the environment.
// It is built once in main and passed into each component constructor —
// nothing reads os.Getenv after startup.
type Config struct {
	Port    string
	GinMode string

	// Datastore
	DatabasePath string

	// Credential signing
	JWTSecret []byte
	TokenTTL  time.Duration

	// Discord OAuth application
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string

	// Required guild + privileged lookups
	DiscordGuildID  string
	DiscordBotToken string
	InviteLink      string

	// Guild role IDs mapped to application roles
	RoleOwnerID    string
	RoleManagerID  string
	RoleCustomerID string

	// Outbound notifications
	WebhookURL string

	// Overridable for tests; defaults to the real Discord API
	DiscordAPIBase string
}

const (
	defaultTokenTTL = 24 * time.Hour
	maxTokenTTL     = 7 * 24 * time.Hour
)

// Load reads the full configuration from the environment with sensible
// local-dev fallbacks.
func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DatabasePath: getEnv("DATABASE_PATH", "dealership.db"),

		JWTSecret: []byte(getEnv("JWT_SECRET", "dealership_super_secret_2024")),
		TokenTTL:  tokenTTL(),

		DiscordClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		DiscordRedirectURI:  os.Getenv("DISCORD_REDIRECT_URI"),

		DiscordGuildID:  os.Getenv("DISCORD_GUILD_ID"),
		DiscordBotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		InviteLink:      getEnv("DISCORD_INVITE_LINK", "https://discord.gg/your-server"),

		RoleOwnerID:    os.Getenv("ROLE_OWNER_ID"),
		RoleManagerID:  os.Getenv("ROLE_MANAGER_ID"),
		RoleCustomerID: os.Getenv("ROLE_CUSTOMER_ID"),

		WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),

		DiscordAPIBase: getEnv("DISCORD_API_BASE", "https://discord.com/api"),
	}
}

// tokenTTL reads TOKEN_TTL_HOURS and clamps it to the 24h–7d window.
func tokenTTL() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS"))
	if err != nil || hours <= 0 {
		return defaultTokenTTL
	}
	ttl := time.Duration(hours) * time.Hour
	if ttl < defaultTokenTTL {
		return defaultTokenTTL
	}
	if ttl > maxTokenTTL {
		return maxTokenTTL
	}
	return ttl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to sqlite and migrates all models.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Order{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
