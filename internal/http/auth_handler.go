package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/http/validators"
)

func (h *Handler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignupRequest(&req); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()

	user, emailSent, err := h.auth.Signup(ctx, req.Username, req.Email, req.Password, requestInfo(c))
	if err != nil {
		return respondError(c, err)
	}

	message := "account created, check your email for the activation link"
	if !emailSent {
		message = "account created but the activation email could not be sent; try again later"
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":       user,
		"email_sent": emailSent,
		"message":    message,
	})
}

func (h *Handler) Activate(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "activation token is required")
	}

	result, err := h.auth.Activate(c.Request().Context(), token, requestInfo(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return respondError(c, err)
	}

	result, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
