package middleware

import (
	"strings"

	"vibemarket-backend/internal/application/access"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const identityLocal = "identity"

// Claims is the subset of the identity provider's access token we rely on.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity verifies an optional "Authorization: Bearer <token>" header and stores
// the caller in Locals. A missing or invalid token leaves the request anonymous;
// routes that need a caller are guarded by RequireIdentity.
func Identity(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" || len(key) == 0 {
			return c.Next()
		}
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid || claims.Subject == "" {
			log.Debug().Str("trace_id", GetTraceID(c)).Err(err).Msg("ignoring invalid bearer token")
			return c.Next()
		}
		SetIdentity(c, &access.Identity{ID: claims.Subject, Email: claims.Email})
		return c.Next()
	}
}

// SetIdentity attaches a verified caller to the request.
func SetIdentity(c *fiber.Ctx, id *access.Identity) {
	c.Locals(identityLocal, id)
}

// GetIdentity returns the verified caller, or nil when anonymous.
func GetIdentity(c *fiber.Ctx) *access.Identity {
	id, _ := c.Locals(identityLocal).(*access.Identity)
	return id
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
