package middlewares

import (
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lists/internal/listerror"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// CurrentSpaceContextKey is the key to retrieve the current_space from echo.Context.
	CurrentSpaceContextKey = "current_space"
	// SpaceParam is the path parameter holding the space id.
	SpaceParam = "space_id"
)

var spacePattern = regexp.MustCompile(`^[a-z0-9_-]{1,128}$`)

// CurrentUser stores the acting user into echo.Context.
// The user is read from the given header, a trusted reverse proxy is expected to set it.
// The fallback is used when the header is missing.
func CurrentUser(header, fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := strings.TrimSpace(c.Request().Header.Get(header))
			if user == "" {
				user = fallback
			}

			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}

// CurrentSpace stores the space id of the request path into echo.Context.
// Routes without space parameter get an empty space id.
func CurrentSpace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			space := c.Param(SpaceParam)
			if space != "" && !spacePattern.MatchString(space) {
				return listerror.InvalidParameters("space_id must only contain lowercase letters, digits, hyphens and underscores")
			}

			c.Set(CurrentSpaceContextKey, space)
			return next(c)
		}
	}
}
