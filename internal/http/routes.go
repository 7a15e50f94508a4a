package http

import (
	"github.com/labstack/echo/v4"

	middleware "github.com/taskboard/taskboard/internal/http/middlewares"
	repository "github.com/taskboard/taskboard/internal/repositories"
)

func Register(e *echo.Echo, h *Handler, jwtSecret string, users *repository.UserRepository) {
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/activate/:token", h.Activate)
	e.POST("/auth/login", h.Login)

	authed := e.Group("", middleware.RequireAuth(jwtSecret, users))

	authed.GET("/workspaces", h.ListWorkspaces)
	authed.POST("/workspaces", h.CreateWorkspace)
	authed.GET("/workspaces/:id", h.WorkspaceDetail)
	authed.GET("/workspaces/:id/delete", h.WorkspaceDeletionSummary)
	authed.DELETE("/workspaces/:id", h.DeleteWorkspace)
	authed.POST("/workspaces/:id/members", h.InviteMember)
	authed.DELETE("/workspaces/:id/members/:userID", h.RemoveMember)
	authed.POST("/workspaces/:id/projects", h.CreateProject)

	authed.GET("/projects/:id", h.ProjectBoard)
	authed.DELETE("/projects/:id", h.DeleteProject)
	authed.GET("/projects/:id/clear", h.ProjectClearSummary)
	authed.POST("/projects/:id/clear", h.ClearProjectTasks)
	authed.POST("/projects/:id/columns", h.CreateColumn)
	authed.POST("/projects/:id/tasks", h.CreateTask)

	authed.PUT("/columns/:id", h.UpdateColumn)
	authed.DELETE("/columns/:id", h.DeleteColumn)

	authed.PUT("/tasks/:id", h.UpdateTask)
	authed.POST("/tasks/:id/move/:columnID", h.MoveTask)
	authed.POST("/tasks/:id/archive", h.ArchiveTask)
	authed.POST("/tasks/:id/comments", h.CreateComment)

	authed.GET("/tags", h.ListTags)
	authed.POST("/tags", h.CreateTag)
	authed.GET("/activity", h.RecentActivity)
}
