package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"dealership-api/config"

	"golang.org/x/oauth2"
)

// Sentinel errors so handlers can map failures to HTTP statuses.
var (
	ErrExchangeFailed = errors.New("discord token exchange failed")
	ErrIdentityFailed = errors.New("discord identity fetch failed")
	ErrGuildsFailed   = errors.New("discord guild list fetch failed")
	ErrMemberLookup   = errors.New("discord guild member lookup failed")
	ErrRolesLookup    = errors.New("discord guild roles fetch failed")
	ErrNotGuildMember = errors.New("user is not a member of the required guild")
)

// Identity is the user profile as returned by /users/@me.
type Identity struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	GlobalName    string `json:"global_name"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

// Guild is one entry from /users/@me/guilds.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GuildRole is one entry from /guilds/{id}/roles.
type GuildRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
}

// guildMember is the subset of /guilds/{id}/members/{uid} we care about.
type guildMember struct {
	Roles []string `json:"roles"`
}

// Client talks to the Discord HTTP API. The base URL is injectable so
// tests can point it at a local double.
type Client struct {
	oauth    *oauth2.Config
	http     *http.Client
	baseURL  string
	guildID  string
	botToken string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.DiscordAPIBase + "/oauth2/authorize",
				TokenURL: cfg.DiscordAPIBase + "/oauth2/token",
			},
		},
		http:     &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.DiscordAPIBase,
		guildID:  cfg.DiscordGuildID,
		botToken: cfg.DiscordBotToken,
	}
}

// ExchangeCode trades the authorization code for a user access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return "", ErrExchangeFailed
	}
	return token.AccessToken, nil
}

// FetchIdentity returns the user profile behind the access token.
func (c *Client) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	if err := c.get(ctx, "/users/@me", "Bearer "+accessToken, &identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFailed, err)
	}
	if identity.ID == "" {
		return nil, ErrIdentityFailed
	}
	return &identity, nil
}

// CheckGuildMembership lists the user's guilds and returns the required
// guild's entry, or ErrNotGuildMember when the user is not in it.
func (c *Client) CheckGuildMembership(ctx context.Context, accessToken string) (*Guild, error) {
	var guilds []Guild
	if err := c.get(ctx, "/users/@me/guilds", "Bearer "+accessToken, &guilds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGuildsFailed, err)
	}
	for i := range guilds {
		if guilds[i].ID == c.guildID {
			return &guilds[i], nil
		}
	}
	return nil, ErrNotGuildMember
}

// FetchMemberRoles looks up the user's guild role IDs using the bot token.
// This is the only call made with the privileged service credential.
func (c *Client) FetchMemberRoles(ctx context.Context, userID string) ([]string, error) {
	var member guildMember
	path := "/guilds/" + c.guildID + "/members/" + userID
	if err := c.get(ctx, path, "Bot "+c.botToken, &member); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMemberLookup, err)
	}
	return member.Roles, nil
}

// FetchGuildRoles lists every role defined in the required guild.
func (c *Client) FetchGuildRoles(ctx context.Context) ([]GuildRole, error) {
	var guildRoles []GuildRole
	path := "/guilds/" + c.guildID + "/roles"
	if err := c.get(ctx, path, "Bot "+c.botToken, &guildRoles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRolesLookup, err)
	}
	return guildRoles, nil
}

func (c *Client) get(ctx context.Context, path, authorization string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
