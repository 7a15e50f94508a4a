package http

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/errs"
	middleware "github.com/taskboard/taskboard/internal/http/middlewares"
	model "github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/services"
	"github.com/taskboard/taskboard/internal/telemetry"
)

type Handler struct {
	auth       *services.AuthService
	workspaces *services.WorkspaceService
	projects   *services.ProjectService
	tasks      *services.TaskService
	tags       *services.TagService
	recorder   *telemetry.Recorder
}

func NewHandler(
	auth *services.AuthService,
	workspaces *services.WorkspaceService,
	projects *services.ProjectService,
	tasks *services.TaskService,
	tags *services.TagService,
	recorder *telemetry.Recorder,
) *Handler {
	return &Handler{
		auth:       auth,
		workspaces: workspaces,
		projects:   projects,
		tasks:      tasks,
		tags:       tags,
		recorder:   recorder,
	}
}

// respondError maps service errors onto HTTP responses: validation
// failures carry their field map, app exceptions keep their status,
// anything else is a 500.
func respondError(c echo.Context, err error) error {
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(errs.StatusCode(err), echo.Map{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
	}

	var appErr *errs.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}

	return echo.NewHTTPError(errs.StatusCode(err), "internal error")
}

func currentUser(c echo.Context) *model.User {
	return middleware.CurrentUser(c)
}

func requestInfo(c echo.Context) telemetry.RequestInfo {
	req := c.Request()
	return telemetry.RequestInfo{
		Path:         req.URL.Path,
		ForwardedFor: req.Header.Get("X-Forwarded-For"),
		RemoteAddr:   req.RemoteAddr,
		UserAgent:    req.UserAgent(),
	}
}

func parseDate(value string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, errs.NewValidation("due_date", "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
