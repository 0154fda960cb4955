package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"caltrack/internal/auth"
	"caltrack/internal/handler"
	"caltrack/internal/repository"
)

// Register wires routes and middleware. Every protected route sits behind the
// JWT gate plus the actor loader, so handlers always see a live user row.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	entryHandler *handler.EntryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Secured routes (require JWT authentication + a live actor)
	secured := e.Group("", auth.JWTMiddleware(jwtService), auth.LoadActor(userRepo))

	// Entry routes
	secured.GET("/entries", entryHandler.ListEntries)
	secured.GET("/entries/:id", entryHandler.GetEntry)
	secured.POST("/entries", entryHandler.CreateEntry)
	secured.PUT("/entries/:id", entryHandler.UpdateEntry)
	secured.DELETE("/entries/:id", entryHandler.DeleteEntry)

	// User routes (static segments before :id so they never shadow)
	secured.POST("/users/create", userHandler.CreateUser)
	secured.GET("/users/list", userHandler.ListUsers)
	secured.PUT("/users/expected-calories", userHandler.SetExpectedCalories)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
