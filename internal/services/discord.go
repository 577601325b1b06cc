package services

import (
	"net/url"

	"vendorhub/internal/apperr"
)

const (
	discordAuthorizeURL  = "https://discord.com/api/oauth2/authorize"
	discordCallbackPath  = "/api/auth/discord/callback"
	discordDefaultScopes = "identify"
)

// DiscordLinker builds the OAuth authorize URL used to link a Discord account.
type DiscordLinker struct {
	clientID string
	appURL   string
}

func NewDiscordLinker(clientID, appURL string) *DiscordLinker {
	return &DiscordLinker{clientID: clientID, appURL: appURL}
}

func (d *DiscordLinker) AuthorizeURL() (string, error) {
	if d.clientID == "" {
		return "", apperr.Internal("discord client id is not configured", nil)
	}
	q := url.Values{}
	q.Set("client_id", d.clientID)
	q.Set("redirect_uri", d.appURL+discordCallbackPath)
	q.Set("response_type", "code")
	q.Set("scope", discordDefaultScopes)
	return discordAuthorizeURL + "?" + q.Encode(), nil
}
