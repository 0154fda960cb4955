package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caltrack/internal/auth"
	apperrors "caltrack/internal/errors"
	"caltrack/internal/model"
	"caltrack/internal/repository"
	"caltrack/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a privileged user creation request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents a privileged user update request.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ExpectedCaloriesRequest sets the actor's daily calorie budget.
type ExpectedCaloriesRequest struct {
	ExpectedDailyCalories *int `json:"expected_daily_calories" validate:"required"`
}

// UserListResponse is one page of users plus pagination metadata.
type UserListResponse struct {
	Users       []model.User `json:"users"`
	TotalUsers  int64        `json:"total_users"`
	CurrentPage int          `json:"current_page"`
	PerPage     int          `json:"per_page"`
	TotalPages  int64        `json:"total_pages"`
	HasNext     bool         `json:"has_next"`
	HasPrev     bool         `json:"has_prev"`
}

// CreateUser godoc
// @Summary Create a user (manager/admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/create [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	user, err := h.userService.CreateUser(c.Request().Context(), auth.Actor(c), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get a user by id (manager/admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	// Role check happens before the id is used, so a malformed id leaks
	// nothing to unauthorized actors.
	id, _ := uuid.Parse(c.Param("id"))

	user, err := h.userService.GetUser(c.Request().Context(), auth.Actor(c), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users (manager/admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-indexed)"
// @Param per_page query int false "Items per page"
// @Param username query string false "Name substring"
// @Param email query string false "Email substring"
// @Param role query string false "Role substring"
// @Success 200 {object} UserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/list [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Name:    c.QueryParam("username"),
		Email:   c.QueryParam("email"),
		Role:    c.QueryParam("role"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 10),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 10
	}

	users, total, err := h.userService.ListUsers(c.Request().Context(), auth.Actor(c), filter)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	totalPages := (total + int64(filter.PerPage) - 1) / int64(filter.PerPage)
	return c.JSON(http.StatusOK, UserListResponse{
		Users:       users,
		TotalUsers:  total,
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
		TotalPages:  totalPages,
		HasNext:     int64(filter.Page) < totalPages,
		HasPrev:     filter.Page > 1,
	})
}

// UpdateUser godoc
// @Summary Update a user (manager/admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "User patch"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, _ := uuid.Parse(c.Param("id"))

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), auth.Actor(c), id, service.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user and all of its entries
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, _ := uuid.Parse(c.Param("id"))

	if err := h.userService.DeleteUser(c.Request().Context(), auth.Actor(c), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

// SetExpectedCalories godoc
// @Summary Set the actor's expected daily calories
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpectedCaloriesRequest true "Daily budget"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/expected-calories [put]
func (h *UserHandler) SetExpectedCalories(c echo.Context) error {
	var req ExpectedCaloriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	if err := h.userService.SetExpectedCalories(c.Request().Context(), auth.Actor(c), *req.ExpectedDailyCalories); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Expected calories per day updated"})
}
