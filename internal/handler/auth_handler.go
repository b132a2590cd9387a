package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "userdir/internal/errors"
	"userdir/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token godoc
// @Summary Exchange the API credential for a bearer token
// @Tags auth
// @Produce json
// @Param Username query string true "Username"
// @Param Password query string true "Password"
// @Success 200 {string} string "Signed bearer token"
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth [get]
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.QueryParam("Username")
	password := c.QueryParam("Password")

	token, err := h.authService.Login(username, password)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, token)
}
