package handlers_test

import (
	"net/http"
	"testing"

	"dealership-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccessEmptyMembershipIsGuest(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true, memberRoles: []string{}})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "guest", body["role"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "GTA V Dealership", body["guild"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, stubUserID, user["id"])
	assert.Equal(t, "testuser", user["username"])
	assert.Contains(t, user["avatar_url"], "cdn.discordapp.com/avatars/42/abcdef.png")
}

func TestLoginResolvesOwnerOverManager(t *testing.T) {
	env := newTestEnv(t, discordStub{
		inGuild:     true,
		memberRoles: []string{"role-manager", "role-owner"},
	})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner", decodeBody(t, w)["role"])
}

func TestLoginExchangeFailure(t *testing.T) {
	env := newTestEnv(t, discordStub{failExchange: true, inGuild: true})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "bad"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "token")
	assert.Contains(t, body, "error")
}

func TestLoginMissingCode(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginNotInRequiredGuild(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: false})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "https://discord.gg/test", body["inviteLink"])
}

func TestLoginGuildListFailureAborts(t *testing.T) {
	// The guild-list check uses the user's own token; if it fails the
	// login cannot proceed, unlike the best-effort bot role lookup.
	env := newTestEnv(t, discordStub{inGuild: true, failGuilds: true})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "token")
	assert.Contains(t, body, "error")
}

func TestLoginMemberLookupFailureDegradesToCustomer(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true, failMember: true})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code, "login must survive a dead bot credential")
	assert.Equal(t, "customer", decodeBody(t, w)["role"])
}

func TestLoginIdentityFailure(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true, failIdentity: true})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginPersistsUser(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true, memberRoles: []string{"role-manager"}})

	w := env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("discord_id = ?", stubUserID).First(&user).Error)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, models.RoleManager, user.Role)

	// Second login refreshes the row instead of duplicating it.
	w = env.do(t, http.MethodPost, "/auth", "", map[string]string{"code": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestVerifyAuthRoundTrip(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true})
	token := env.tokenFor(t, models.RoleManager)

	w := env.do(t, http.MethodGet, "/verify-auth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "manager", body["role"])
}

func TestVerifyAuthRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t, discordStub{inGuild: true})
	w := env.do(t, http.MethodGet, "/verify-auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
