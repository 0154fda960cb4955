package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caltrack/internal/auth"
	apperrors "caltrack/internal/errors"
	"caltrack/internal/repository"
	"caltrack/internal/service"
)

// EntryHandler handles entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// CreateEntryRequest represents an entry submission.
type CreateEntryRequest struct {
	Text     string     `json:"text" validate:"required"`
	Calories *int       `json:"calories"`
	Date     *string    `json:"date"`
	Time     *string    `json:"time"`
	UserID   *uuid.UUID `json:"user_id"`
}

// UpdateEntryRequest represents an entry patch. Omitted calories clears the
// stored value; see the entry service for the full contract.
type UpdateEntryRequest struct {
	Text     *string `json:"text"`
	Calories *int    `json:"calories"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
}

// ListEntries godoc
// @Summary List entries visible to the actor
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-indexed)"
// @Param per_page query int false "Items per page"
// @Param username query string false "Owner name substring"
// @Param food query string false "Food text substring"
// @Success 200 {object} service.EntryPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /entries [get]
func (h *EntryHandler) ListEntries(c echo.Context) error {
	filter := repository.EntryFilter{
		Username: c.QueryParam("username"),
		Food:     c.QueryParam("food"),
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 10),
	}

	page, err := h.entryService.List(c.Request().Context(), auth.Actor(c), filter)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, page)
}

// GetEntry godoc
// @Summary Get an entry by id
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} service.EntryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [get]
func (h *EntryHandler) GetEntry(c echo.Context) error {
	// A malformed id behaves like a missing entry, matching the scoped-lookup
	// contract (404, never a parse error).
	id, _ := uuid.Parse(c.Param("id"))

	entry, err := h.entryService.Get(c.Request().Context(), auth.Actor(c), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, entry)
}

// CreateEntry godoc
// @Summary Create a new entry
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEntryRequest true "Entry data"
// @Success 201 {object} service.EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries [post]
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	entry, err := h.entryService.Create(c.Request().Context(), auth.Actor(c), service.EntryInput{
		Date:     req.Date,
		Time:     req.Time,
		Text:     req.Text,
		Calories: req.Calories,
		OwnerID:  req.UserID,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Update an entry
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body UpdateEntryRequest true "Entry patch"
// @Success 200 {object} service.EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	id, _ := uuid.Parse(c.Param("id"))

	var req UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	entry, err := h.entryService.Update(c.Request().Context(), auth.Actor(c), id, service.EntryPatch{
		Date:     req.Date,
		Time:     req.Time,
		Text:     req.Text,
		Calories: req.Calories,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	id, _ := uuid.Parse(c.Param("id"))

	if err := h.entryService.Delete(c.Request().Context(), auth.Actor(c), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Entry deleted"})
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
