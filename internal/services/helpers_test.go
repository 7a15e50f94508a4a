package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/telemetry"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Project{},
		&model.Column{},
		&model.Tag{},
		&model.Task{},
		&model.Comment{},
		&model.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	workspaces *repository.WorkspaceRepository
	projects   *repository.ProjectRepository
	taskRepo   *repository.TaskRepository
	tags       *repository.TagRepository
	perms      *Permissions
	recorder   *telemetry.Recorder

	workspaceSvc *WorkspaceService
	projectSvc   *ProjectService
	taskSvc      *TaskService
	tagSvc       *TagService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)

	users := repository.NewUserRepository(db)
	workspaces := repository.NewWorkspaceRepository(db)
	projects := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tags := repository.NewTagRepository(db)
	perms := NewPermissions(workspaces)
	recorder := telemetry.NewRecorder(db, true)

	return &testEnv{
		db:           db,
		users:        users,
		workspaces:   workspaces,
		projects:     projects,
		taskRepo:     taskRepo,
		tags:         tags,
		perms:        perms,
		recorder:     recorder,
		workspaceSvc: NewWorkspaceService(workspaces, users, perms, recorder),
		projectSvc:   NewProjectService(projects, workspaces, taskRepo, tags, perms, recorder),
		taskSvc:      NewTaskService(taskRepo, projects, workspaces, tags, users, perms, recorder),
		tagSvc:       NewTagService(tags),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()

	user, err := e.users.Create(context.Background(), username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	if err := e.users.Activate(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to activate user %s: %v", username, err)
	}
	user.IsActive = true
	return user
}

func noRequest() telemetry.RequestInfo {
	return telemetry.RequestInfo{}
}
