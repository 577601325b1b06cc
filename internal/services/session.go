package services

import (
	"context"
	"errors"
	"time"

	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
)

// SessionCookies are the session cookie values read from a request.
type SessionCookies struct {
	Access  string
	Refresh string
}

// SessionCookie is a cookie the caller must write on the response.
// A negative MaxAge deletes the cookie.
type SessionCookie struct {
	Name    string
	Value   string
	Expires time.Time
	MaxAge  int
}

// CookieNames names the session cookies.
type CookieNames struct {
	Access  string
	Refresh string
}

// Session is a resolved identity and its application profile.
type Session struct {
	Identity Identity
	Profile  *models.Profile
}

// SessionResolver turns session cookies into a Session.
type SessionResolver struct {
	provider IdentityProvider
	profiles repositories.ProfileRepository
	names    CookieNames
}

func NewSessionResolver(provider IdentityProvider, profiles repositories.ProfileRepository, names CookieNames) *SessionResolver {
	return &SessionResolver{provider: provider, profiles: profiles, names: names}
}

func (r *SessionResolver) CookieNames() CookieNames {
	return r.names
}

// Resolve verifies the access token, falling back to the refresh token. When the session is
// refreshed the returned cookies carry the rotated tokens; on failure they clear stale cookies.
// The cookies must be applied to the response whether or not an error is returned.
// Resolve never creates a profile.
func (r *SessionResolver) Resolve(ctx context.Context, in SessionCookies) (*Session, []SessionCookie, error) {
	var mutations []SessionCookie

	identity, err := r.provider.Verify(ctx, in.Access)
	if err != nil {
		if in.Refresh == "" {
			if in.Access != "" {
				mutations = r.ClearCookies()
			}
			return nil, mutations, apperr.Unauthenticated("not authenticated")
		}
		var pair *TokenPair
		identity, pair, err = r.provider.Refresh(ctx, in.Refresh)
		if err != nil {
			if apperr.Is(err, apperr.KindInternal) {
				return nil, nil, err
			}
			return nil, r.ClearCookies(), apperr.Unauthenticated("session expired")
		}
		mutations = r.CookiesFor(pair)
	}

	profile, err := r.profiles.GetByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, mutations, apperr.NotFound("profile not found")
		}
		return nil, mutations, apperr.Internal("failed to load profile", err)
	}
	return &Session{Identity: *identity, Profile: profile}, mutations, nil
}

// CookiesFor returns the cookies that store pair.
func (r *SessionResolver) CookiesFor(pair *TokenPair) []SessionCookie {
	return []SessionCookie{
		{Name: r.names.Access, Value: pair.AccessToken, Expires: pair.AccessExpiresAt},
		{Name: r.names.Refresh, Value: pair.RefreshToken, Expires: pair.RefreshExpiresAt},
	}
}

// ClearCookies returns the cookies that delete both session cookies.
func (r *SessionResolver) ClearCookies() []SessionCookie {
	return []SessionCookie{
		{Name: r.names.Access, Expires: time.Unix(0, 0), MaxAge: -1},
		{Name: r.names.Refresh, Expires: time.Unix(0, 0), MaxAge: -1},
	}
}
