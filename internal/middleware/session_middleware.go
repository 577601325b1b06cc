package middleware

import (
	"vendorhub/internal/apperr"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"

// SessionRequired resolves the session cookies into a Session stored in the request locals.
// Cookie mutations from the resolver are written even when the request is rejected.
func SessionRequired(resolver *services.SessionResolver, log *logger.Logger, secureCookies bool) fiber.Handler {
	names := resolver.CookieNames()
	return func(c *fiber.Ctx) error {
		session, mutations, err := resolver.Resolve(c.UserContext(), services.SessionCookies{
			Access:  c.Cookies(names.Access),
			Refresh: c.Cookies(names.Refresh),
		})
		SetCookies(c, mutations, secureCookies)
		if err != nil {
			kind := apperr.KindOf(err)
			if kind == apperr.KindInternal {
				log.Error("Session resolution failed", "path", c.Path(), "error", err)
				return c.Status(kind.Status()).JSON(fiber.Map{"error": "internal server error"})
			}
			log.Debug("Rejected unauthenticated request", "path", c.Path(), "reason", err.Error())
			return c.Status(kind.Status()).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals(sessionLocalsKey, session)
		return c.Next()
	}
}

// SessionFrom returns the Session stored by SessionRequired, or nil outside it.
func SessionFrom(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals(sessionLocalsKey).(*services.Session)
	return session
}

// SetCookies writes the session cookie mutations on the response.
func SetCookies(c *fiber.Ctx, cookies []services.SessionCookie, secure bool) {
	for _, sc := range cookies {
		c.Cookie(&fiber.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     "/",
			Expires:  sc.Expires,
			MaxAge:   sc.MaxAge,
			Secure:   secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
