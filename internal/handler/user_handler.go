package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/service"
)

// gmailPattern is the legacy write-path email constraint.
var gmailPattern = regexp.MustCompile(`\w@gmail\.com`)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Name  string `json:"name" query:"name" validate:"required"`
	Age   int    `json:"age" query:"age" validate:"required,gt=0"`
	Email string `json:"email" query:"email" validate:"required"`
}

// UpdateUserRequest represents a partial user update. Empty or
// non-positive fields leave the stored values unchanged.
type UpdateUserRequest struct {
	Name  string `json:"name" query:"name"`
	Age   int    `json:"age" query:"age"`
	Email string `json:"email" query:"email"`
}

// ListUsers godoc
// @Summary List users with pagination, filters and sorting
// @Description Encode of sorting fields: 0-name, 1-age, 2-email, 3-name of role.
// @Tags users
// @Produce json
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 50)"
// @Param sortField query int false "Sort field code"
// @Param isAsc query bool false "Sort ascending"
// @Param nameFilter query string false "Name substring filter"
// @Param emailFilter query string false "Email substring filter"
// @Param roleNameFilter query string false "Role name substring filter"
// @Param minAgeFilter query int false "Minimum age (inclusive)"
// @Param maxAgeFilter query int false "Maximum age (inclusive)"
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	var q model.UserQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	users, err := h.svc.ListUsers(c.Request().Context(), &q)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a new user
// @Description Email must match the gmail-only pattern.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !gmailPattern.MatchString(req.Email) {
		he := apperrors.MapErrorToHTTP(apperrors.ErrInvalidEmail)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Age, req.Email)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update user by id (partial)
// @Description Leave fields empty to keep their stored values.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email != "" && !gmailPattern.MatchString(req.Email) {
		he := apperrors.MapErrorToHTTP(apperrors.ErrInvalidEmail)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.Name, req.Age, req.Email)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// AddRole godoc
// @Summary Add a role to a user
// @Description Encode of role names: 0-User, 1-Admin, 2-Support, 3-SuperAdmin. Names are accepted too.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param roleName path string true "Role name or code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/{roleName} [post]
func (h *UserHandler) AddRole(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	role, err := model.ParseRoleName(c.Param("roleName"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(apperrors.ErrInvalidRoleName)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	if err := h.svc.AddRole(c.Request().Context(), id, role); err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role added"})
}

// DeleteUser godoc
// @Summary Delete user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

// parseID rejects non-numeric and non-positive ids.
func parseID(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}
