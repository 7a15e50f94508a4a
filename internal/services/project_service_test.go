package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
)

func TestProjectCreateSeedsDefaultColumns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())

	project, err := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	columns, err := env.projects.Columns(ctx, project.ID)
	if err != nil {
		t.Fatalf("failed to list columns: %v", err)
	}
	if len(columns) != 4 {
		t.Fatalf("expected 4 seeded columns, got %d", len(columns))
	}

	wantNames := []string{"Backlog", "Todo", "In Progress", "Done"}
	for i, col := range columns {
		if col.Name != wantNames[i] {
			t.Errorf("column %d: name = %q, want %q", i, col.Name, wantNames[i])
		}
		if col.Order != i {
			t.Errorf("column %q: order = %d, want %d", col.Name, col.Order, i)
		}
		if col.Color == "" {
			t.Errorf("column %q: missing color", col.Name)
		}
	}
}

func TestProjectCreateRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())

	_, err := env.projectSvc.Create(ctx, stranger.ID, ws.ID, "Launch", noRequest())
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestBoardForbiddenForStranger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())

	_, err := env.projectSvc.Board(ctx, stranger.ID, project.ID, BoardFilters{})
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestBoardFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	_ = env.workspaces.AddMember(ctx, ws.ID, member.ID, model.RoleMember)
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())

	urgent, _ := env.tagSvc.Create(ctx, "urgent", "#ff0000")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	nextWeek := time.Now().UTC().AddDate(0, 0, 7)

	mustCreate := func(in TaskInput) *model.Task {
		t.Helper()
		task, err := env.taskSvc.Create(ctx, owner.ID, project.ID, in, noRequest())
		if err != nil {
			t.Fatalf("failed to create task %q: %v", in.Title, err)
		}
		return task
	}

	mine := mustCreate(TaskInput{Title: "mine", Priority: model.PriorityHigh, AssigneeIDs: []string{member.ID}})
	mustCreate(TaskInput{Title: "tagged", TagIDs: []string{urgent.ID}})
	mustCreate(TaskInput{Title: "late", DueDate: &yesterday})
	mustCreate(TaskInput{Title: "future", DueDate: &nextWeek})
	archived := mustCreate(TaskInput{Title: "archived"})
	if err := env.taskSvc.Archive(ctx, owner.ID, archived.ID); err != nil {
		t.Fatalf("failed to archive: %v", err)
	}

	boardTasks := func(f BoardFilters) []string {
		t.Helper()
		board, err := env.projectSvc.Board(ctx, owner.ID, project.ID, f)
		if err != nil {
			t.Fatalf("board failed: %v", err)
		}
		var titles []string
		for _, col := range board.Columns {
			for _, task := range col.Tasks {
				titles = append(titles, task.Title)
			}
		}
		return titles
	}

	all := boardTasks(BoardFilters{})
	if len(all) != 4 {
		t.Errorf("unfiltered board should hide archived tasks: got %v", all)
	}
	for _, title := range all {
		if title == "archived" {
			t.Error("archived task leaked into board view")
		}
	}

	if got := boardTasks(BoardFilters{AssigneeID: member.ID}); len(got) != 1 || got[0] != "mine" {
		t.Errorf("assignee filter: got %v", got)
	}
	if got := boardTasks(BoardFilters{TagID: urgent.ID}); len(got) != 1 || got[0] != "tagged" {
		t.Errorf("tag filter: got %v", got)
	}
	if got := boardTasks(BoardFilters{Priority: model.PriorityHigh}); len(got) != 1 || got[0] != "mine" {
		t.Errorf("priority filter: got %v", got)
	}
	if got := boardTasks(BoardFilters{Overdue: true}); len(got) != 1 || got[0] != "late" {
		t.Errorf("overdue filter: got %v", got)
	}

	// Filters compose with AND.
	if got := boardTasks(BoardFilters{AssigneeID: member.ID, Priority: model.PriorityLow}); len(got) != 0 {
		t.Errorf("combined filter should match nothing, got %v", got)
	}

	// An unknown priority value is ignored, not matched against nothing.
	if got := boardTasks(BoardFilters{Priority: "bogus"}); len(got) != 4 {
		t.Errorf("unknown priority should be ignored: got %v", got)
	}

	_ = mine
}

func TestColumnNameUniquePerProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())
	other, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Other", noRequest())

	_, err := env.projectSvc.CreateColumn(ctx, owner.ID, project.ID, ColumnInput{Name: "Backlog", Color: "#000000", Order: 9})
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for duplicate column name, got %v", err)
	}

	// Same name on another board is fine; both start with the seeds.
	if _, err := env.projectSvc.CreateColumn(ctx, owner.ID, other.ID, ColumnInput{Name: "Blocked", Color: "#123456", Order: 4}); err != nil {
		t.Fatalf("column create on other project failed: %v", err)
	}
}

func TestColumnDeleteCascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())

	task, _ := env.taskSvc.Create(ctx, owner.ID, project.ID, TaskInput{Title: "Doomed"}, noRequest())
	if _, err := env.taskSvc.AddComment(ctx, owner.ID, task.ID, "bye"); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	if err := env.projectSvc.DeleteColumn(ctx, owner.ID, task.ColumnID); err != nil {
		t.Fatalf("column delete failed: %v", err)
	}

	var taskCount, commentCount int64
	env.db.Model(&model.Task{}).Count(&taskCount)
	env.db.Model(&model.Comment{}).Count(&commentCount)
	if taskCount != 0 || commentCount != 0 {
		t.Errorf("expected cascade, got %d tasks and %d comments", taskCount, commentCount)
	}
}

func TestClearTasksOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	_ = env.workspaces.AddMember(ctx, ws.ID, member.ID, model.RoleMember)
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())

	for _, title := range []string{"a", "b", "c"} {
		if _, err := env.taskSvc.Create(ctx, member.ID, project.ID, TaskInput{Title: title}, noRequest()); err != nil {
			t.Fatalf("task create failed: %v", err)
		}
	}

	if _, err := env.projectSvc.ClearSummary(ctx, member.ID, project.ID); !errors.Is(err, errs.ErrOwnerOnly) {
		t.Errorf("expected ErrOwnerOnly for member summary, got %v", err)
	}
	if err := env.projectSvc.ClearTasks(ctx, member.ID, project.ID); !errors.Is(err, errs.ErrOwnerOnly) {
		t.Errorf("expected ErrOwnerOnly for member clear, got %v", err)
	}

	count, err := env.projectSvc.ClearSummary(ctx, owner.ID, project.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if count != 3 {
		t.Errorf("summary = %d, want 3", count)
	}

	if err := env.projectSvc.ClearTasks(ctx, owner.ID, project.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	var left int64
	env.db.Model(&model.Task{}).Where("project_id = ?", project.ID).Count(&left)
	if left != 0 {
		t.Errorf("expected 0 tasks after clear, got %d", left)
	}

	columns, _ := env.projects.Columns(ctx, project.ID)
	if len(columns) != 4 {
		t.Errorf("clear should keep columns, got %d", len(columns))
	}
}

func TestProjectDeleteOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")
	ws, _ := env.workspaceSvc.Create(ctx, owner.ID, "Acme", noRequest())
	_ = env.workspaces.AddMember(ctx, ws.ID, member.ID, model.RoleMember)
	project, _ := env.projectSvc.Create(ctx, owner.ID, ws.ID, "Launch", noRequest())

	if err := env.projectSvc.Delete(ctx, member.ID, project.ID); !errors.Is(err, errs.ErrOwnerOnly) {
		t.Errorf("expected ErrOwnerOnly, got %v", err)
	}
	if err := env.projectSvc.Delete(ctx, owner.ID, project.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := env.projects.FindByID(ctx, project.ID); !errors.Is(err, errs.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
