package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"caltrack/internal/model"
	"caltrack/internal/repository"
)

const actorContextKey = "actor"

// JWTMiddleware gates a route group on a valid bearer token. Token validation
// is delegated to the JWTService so claims come back typed.
func JWTMiddleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Anything that isn't a parse failure from ValidateToken is an
			// extraction failure, i.e. no token was presented at all.
			switch {
			case errors.Is(err, ErrExpiredToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "Expired access token")
			case errors.Is(err, ErrInvalidToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing access token")
			}
		},
	})
}

// LoadActor resolves the authenticated claims to the live user row and stores
// it on the request context. Claims only identify the actor; the role used by
// every downstream authorization decision is the one currently in storage.
func LoadActor(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
			}
			actor, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user")
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// Actor returns the authenticated user stored by LoadActor, or nil when the
// route is not behind the authentication middleware.
func Actor(c echo.Context) *model.User {
	actor, _ := c.Get(actorContextKey).(*model.User)
	return actor
}
