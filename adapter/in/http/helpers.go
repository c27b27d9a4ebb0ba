// Package http implements the inbound HTTP adapters.
package http

import (
	"github.com/gofiber/fiber/v2"

	"assistant_server/pkg/apperr"
)

// QueryUserID reads the required user_id query parameter.
func QueryUserID(c *fiber.Ctx) (string, error) {
	userID := c.Query("user_id")
	if userID == "" {
		return "", apperr.ValidationFailed("Missing required parameter: user_id")
	}
	return userID, nil
}
