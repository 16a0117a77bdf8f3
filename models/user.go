package models

import (
	"time"
)

// Role defines the application privilege levels, derived from guild
// role membership at login time.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
	RoleMember   Role = "member"
	RoleGuest    Role = "guest"
)

// IsAdmin reports whether the role can review and approve orders.
func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleManager
}

// Valid reports whether r is one of the known application roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleCustomer, RoleMember, RoleGuest:
		return true
	}
	return false
}

// User is a Discord identity as last seen at login. The Discord snowflake
// is the primary key; profile fields are refreshed on every login.
type User struct {
	DiscordID     string    `json:"discord_id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"not null"`
	GlobalName    string    `json:"global_name"`
	Avatar        string    `json:"avatar"`
	Discriminator string    `json:"discriminator"`
	Role          Role      `json:"role" gorm:"not null;default:'customer'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AvatarURL builds the CDN URL for the user's avatar, or "" when the
// user has no custom avatar set.
func (u *User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return "https://cdn.discordapp.com/avatars/" + u.DiscordID + "/" + u.Avatar + ".png"
}
