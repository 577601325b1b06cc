package services_test

import (
	"net/url"
	"testing"

	"vendorhub/internal/apperr"
	"vendorhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscordLinker_AuthorizeURL(t *testing.T) {
	linker := services.NewDiscordLinker("123456", "https://deals.example.com")

	raw, err := linker.AuthorizeURL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "/api/oauth2/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "123456", q.Get("client_id"))
	assert.Equal(t, "https://deals.example.com/api/auth/discord/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "identify", q.Get("scope"))
}

func TestDiscordLinker_RequiresClientID(t *testing.T) {
	_, err := services.NewDiscordLinker("", "https://deals.example.com").AuthorizeURL()
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}
