package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// MasterDataCache sets cache headers for master data endpoints
// (categories, districts). This data changes rarely, so clients
// may cache it for an hour.
func MasterDataCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set("Cache-Control", "public, max-age=3600")
		}
		return c.Next()
	}
}

// NoCacheHeaders disables caching. Used for auth responses and
// anything carrying per-user data.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// PrivateCacheHeaders allows short-lived client-side caching of
// per-user data such as dashboards.
func PrivateCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set("Cache-Control", "private, max-age=60")
		}
		return c.Next()
	}
}
