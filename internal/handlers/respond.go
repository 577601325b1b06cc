package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/middleware"
	"vendorhub/internal/models"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondData writes the success envelope.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

// respondError maps err to its HTTP status and writes the error envelope.
// Internal failures are logged and never exposed.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("unexpected error", err)
	}
	if appErr.Kind == apperr.KindInternal {
		log.Error(appErr.Message, "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	body := fiber.Map{"error": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return c.Status(appErr.Kind.Status()).JSON(body)
}

// bindJSON parses the request body into dst and validates it. An empty body leaves dst zero.
func bindJSON(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(dst); err != nil {
			return apperr.InvalidInput("invalid request body", map[string]string{"body": err.Error()})
		}
	}
	return validateStruct(validate, dst)
}

func validateStruct(validate *validator.Validate, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.InvalidInput("validation failed", nil)
	}
	details := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		details[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return apperr.InvalidInput("validation failed", details)
}

// authorize rejects the request before its body is read when the actor may not perform action.
func authorize(c *fiber.Ctx, action access.Action, msg string) error {
	if !access.IsAuthorized(actor(c), action) {
		return apperr.Forbidden(msg)
	}
	return nil
}

// actor returns the profile of the resolved session.
func actor(c *fiber.Ctx) *models.Profile {
	if session := middleware.SessionFrom(c); session != nil {
		return session.Profile
	}
	return nil
}

// newValidator reports validation errors by JSON field name.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
