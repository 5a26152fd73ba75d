package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/EnriqueRS/travelmap/internal/pkg/errors"
	"github.com/EnriqueRS/travelmap/internal/pkg/utils"
)

// userIDKey is the fiber locals key the auth middleware stores the user
// under.
const userIDKey = "userID"

// Auth reads the X-User-ID header injected by the API gateway after it
// has verified the session. Requests without it are rejected. This
// service never sees credentials; identity propagation is the gateway's
// job.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the user when the header is present and falls
// back to the anonymous user 0 otherwise.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := parseUserID(c)
		if err != nil {
			userID = 0
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	header := c.Get("X-User-ID")
	if header == "" {
		return 0, errors.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(header, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.ErrUnauthorized
	}
	return userID, nil
}

// UserID returns the authenticated user stored by Auth or OptionalAuth.
func UserID(c *fiber.Ctx) int64 {
	if v, ok := c.Locals(userIDKey).(int64); ok {
		return v
	}
	return 0
}
