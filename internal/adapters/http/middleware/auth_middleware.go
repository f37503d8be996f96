package middleware

import (
	"errors"
	"strings"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/jwt"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AccessTokenCookie is the cookie the browser session carries the token in
const AccessTokenCookie = "access_token"

// Gate is the authorization gate applied to every inbound request.
//
// Order per request: public allowlist check, token extraction (Bearer header
// preferred, cookie fallback), signature/expiry verification, denylist check,
// account re-fetch with active-status check, then the route-role matrix for
// the longest matching prefix. Any failure terminates the request before
// handler logic runs; on success the identity is attached to the context and
// handlers trust it without re-verifying.
//
// The account re-fetch is what makes deactivation take effect on the very
// next request even though the token itself stays valid until expiry. Role
// changes, by contrast, wait for the next login: the matrix reads the role
// embedded in the token.
func Gate(
	cfg *config.Config,
	matrix *RouteMatrix,
	accountRepo repositories.AccountRepository,
	revokedRepo repositories.RevokedTokenRepository,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// 1. Public paths bypass the gate entirely
		if matrix.IsPublic(path) {
			return c.Next()
		}

		// 2. Extract token: Authorization header first, cookie fallback
		token := ExtractToken(c)
		if token == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 3. Verify signature and expiry
		claims, err := jwt.Validate(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 4. Logged-out tokens are denylisted until natural expiry
		revoked, err := revokedRepo.ExistsByTokenHash(c.Context(), password.HashToken(token))
		if err != nil {
			return response.InternalServerError(c, "Failed to verify token")
		}
		if revoked {
			return response.Unauthorized(c, "Access token revoked")
		}

		// 5. Re-check the live account: missing or deactivated accounts are
		// rejected even with a valid token
		account, err := accountRepo.GetByID(c.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Account no longer exists")
			}
			return response.InternalServerError(c, "Failed to verify account")
		}
		if !account.IsActive {
			return response.Unauthorized(c, "Account is deactivated")
		}

		// 6. Route-role matrix, longest prefix wins
		if !matrix.Permits(path, claims.Role) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		// 7. Attach identity for downstream handlers
		c.Locals("accountID", claims.AccountID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)
		c.Locals("token", token)

		return c.Next()
	}
}

// ExtractToken pulls the identity token off a request:
// Authorization bearer header for API clients, cookie for browser sessions.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies(AccessTokenCookie)
}
