package handlers

import (
	"vendorhub/internal/middleware"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles sign-in, sign-out and the Discord link redirect.
type AuthHandler struct {
	provider      services.IdentityProvider
	resolver      *services.SessionResolver
	discord       *services.DiscordLinker
	validate      *validator.Validate
	log           *logger.Logger
	secureCookies bool
}

func NewAuthHandler(provider services.IdentityProvider, resolver *services.SessionResolver, discord *services.DiscordLinker, log *logger.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		provider:      provider,
		resolver:      resolver,
		discord:       discord,
		validate:      newValidator(),
		log:           log.With("handler", "AuthHandler"),
		secureCookies: secureCookies,
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
}

// RegisterSessionRoutes registers the authentication routes that need a session.
func (h *AuthHandler) RegisterSessionRoutes(router fiber.Router) {
	router.Get("/auth/discord", h.HandleDiscordRedirect)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and sets the session cookies.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return respondError(c, h.log, err)
	}

	identity, pair, err := h.provider.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.log.Debug("Login failed", "email", req.Email, "error", err)
		return respondError(c, h.log, err)
	}

	middleware.SetCookies(c, h.resolver.CookiesFor(pair), h.secureCookies)
	return respondData(c, fiber.StatusOK, identity)
}

// HandleLogout clears the session cookies.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	middleware.SetCookies(c, h.resolver.ClearCookies(), h.secureCookies)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDiscordRedirect sends the user to Discord to authorize linking their account.
func (h *AuthHandler) HandleDiscordRedirect(c *fiber.Ctx) error {
	url, err := h.discord.AuthorizeURL()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}
