package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dealership-api/config"
	"dealership-api/discord"
	"dealership-api/handlers"
	"dealership-api/middleware"
	"dealership-api/models"
	"dealership-api/notify"
	"dealership-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// discordStub configures the fake Discord API backing a test.
type discordStub struct {
	failExchange bool
	failIdentity bool
	failGuilds   bool
	failMember   bool
	memberRoles  []string
	inGuild      bool
}

const (
	stubGuildID = "guild-1"
	stubUserID  = "42"
)

func newDiscordServer(t *testing.T, stub discordStub) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if stub.failExchange {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "user-access-token",
			"token_type":   "bearer",
			"expires_in":   604800,
		})
	})

	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		if stub.failIdentity {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(discord.Identity{
			ID:            stubUserID,
			Username:      "testuser",
			GlobalName:    "Test User",
			Avatar:        "abcdef",
			Discriminator: "0001",
		})
	})

	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		if stub.failGuilds {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		guilds := []discord.Guild{{ID: "other-guild", Name: "Other"}}
		if stub.inGuild {
			guilds = append(guilds, discord.Guild{ID: stubGuildID, Name: "GTA V Dealership"})
		}
		json.NewEncoder(w).Encode(guilds)
	})

	mux.HandleFunc("/guilds/"+stubGuildID+"/members/"+stubUserID, func(w http.ResponseWriter, r *http.Request) {
		if stub.failMember {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"roles": stub.memberRoles})
	})

	mux.HandleFunc("/guilds/"+stubGuildID+"/roles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]discord.GuildRole{
			{ID: "role-owner", Name: "Owner", Position: 3},
			{ID: "role-manager", Name: "Manager", Position: 2},
			{ID: "role-customer", Name: "Customer", Position: 1},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	webhook *notify.Webhook
}

func newTestEnv(t *testing.T, stub discordStub) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := newDiscordServer(t, stub)

	cfg := &config.Config{
		JWTSecret:       []byte("test-secret"),
		TokenTTL:        24 * time.Hour,
		DiscordClientID: "client-id",
		DiscordGuildID:  stubGuildID,
		DiscordBotToken: "bot-token",
		InviteLink:      "https://discord.gg/test",
		RoleOwnerID:     "role-owner",
		RoleManagerID:   "role-manager",
		RoleCustomerID:  "role-customer",
		DiscordAPIBase:  srv.URL,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory sqlite is per-connection; keep the pool to one.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Order{}))

	webhook := notify.NewWebhook("")
	h := handlers.New(cfg, db, discord.NewClient(cfg), webhook)

	r := gin.New()
	routes.SetupRoutes(r, cfg, h)

	return &testEnv{router: r, db: db, cfg: cfg, webhook: webhook}
}

// tokenFor mints a valid credential for the stub user with the given role.
func (e *testEnv) tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := middleware.GenerateToken(&models.User{
		DiscordID: stubUserID,
		Username:  "testuser",
		Role:      role,
	}, e.cfg.JWTSecret, e.cfg.TokenTTL)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
