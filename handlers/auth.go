package handlers

import (
	"errors"
	"log"
	"net/http"

	"dealership-api/discord"
	"dealership-api/middleware"
	"dealership-api/models"
	"dealership-api/roles"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Code string `json:"code" binding:"required"`
}

// Login runs the full Discord OAuth flow:
// exchange code → fetch identity → required-guild check →
// best-effort role lookup → resolve role → issue signed token.
//
// Only the role lookup is allowed to fail without aborting the login;
// it uses the bot credential, which can be unavailable independently of
// the user's own OAuth session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No authorization code"})
		return
	}
	ctx := c.Request.Context()

	accessToken, err := h.discord.ExchangeCode(ctx, req.Code)
	if err != nil {
		log.Printf("auth: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Discord auth failed"})
		return
	}

	identity, err := h.discord.FetchIdentity(ctx, accessToken)
	if err != nil {
		log.Printf("auth: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Discord auth failed"})
		return
	}

	guild, err := h.discord.CheckGuildMembership(ctx, accessToken)
	if err != nil {
		if errors.Is(err, discord.ErrNotGuildMember) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":      "Join our Discord server first",
				"inviteLink": h.cfg.InviteLink,
			})
			return
		}
		log.Printf("auth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	// Privileged role lookup is best-effort: a dead bot token must not
	// lock everyone out, it only costs them their elevated role.
	table := roles.TableFromConfig(h.cfg)
	role := models.RoleCustomer
	memberRoleIDs, err := h.discord.FetchMemberRoles(ctx, identity.ID)
	if err != nil {
		log.Printf("auth: could not fetch roles, using default: %v", err)
	} else {
		role = roles.Resolve(memberRoleIDs, table)
	}

	user := models.User{
		DiscordID:     identity.ID,
		Username:      identity.Username,
		GlobalName:    identity.GlobalName,
		Avatar:        identity.Avatar,
		Discriminator: identity.Discriminator,
		Role:          role,
	}
	if err := h.upsertUser(&user); err != nil {
		log.Printf("auth: failed to persist user %s: %v", user.DiscordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, err := middleware.GenerateToken(&user, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		log.Printf("auth: failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	log.Printf("🎉 auth successful: %s role=%s", user.Username, role)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":            user.DiscordID,
			"username":      user.Username,
			"global_name":   user.GlobalName,
			"avatar":        user.Avatar,
			"discriminator": user.Discriminator,
			"avatar_url":    user.AvatarURL(),
		},
		"role":  role,
		"guild": guild.Name,
	})
}

// upsertUser refreshes the user's profile row on every login.
func (h *Handler) upsertUser(user *models.User) error {
	var existing models.User
	err := h.db.Where("discord_id = ?", user.DiscordID).First(&existing).Error
	if err == nil {
		return h.db.Model(&existing).Updates(map[string]interface{}{
			"username":      user.Username,
			"global_name":   user.GlobalName,
			"avatar":        user.Avatar,
			"discriminator": user.Discriminator,
			"role":          user.Role,
		}).Error
	}
	return h.db.Create(user).Error
}

// VerifyAuth re-validates the bearer credential and echoes its claims.
// Runs behind AuthRequired, so reaching here means the token is good.
func (h *Handler) VerifyAuth(c *gin.Context) {
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"discord_id":    claims.DiscordID,
			"username":      claims.Username,
			"global_name":   claims.GlobalName,
			"avatar":        claims.Avatar,
			"discriminator": claims.Discriminator,
			"role":          claims.Role,
		},
		"role":  claims.Role,
		"valid": true,
	})
}
