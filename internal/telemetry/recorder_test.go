package telemetry

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/taskboard/taskboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.ActivityLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestRecorderDisabledWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, false)

	recorder.Record(context.Background(), "user-1", "task_created", RequestInfo{}, nil)

	var count int64
	db.Model(&model.ActivityLog{}).Count(&count)
	if count != 0 {
		t.Errorf("disabled recorder wrote %d rows", count)
	}
}

func TestRecorderTruncatesLongFields(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, true)

	long := strings.Repeat("x", 300)
	recorder.Record(context.Background(), "user-1", "task_created", RequestInfo{
		Path:      "/" + long,
		UserAgent: long,
	}, nil)

	entries, err := recorder.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if len(entries[0].RequestPath) != 255 {
		t.Errorf("path length = %d, want 255", len(entries[0].RequestPath))
	}
	if len(entries[0].UserAgent) != 255 {
		t.Errorf("user agent length = %d, want 255", len(entries[0].UserAgent))
	}
}

func TestRecorderTruncatesOnRuneBoundary(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, true)

	// Multi-byte runes positioned so a byte cut at 255 would split one.
	long := strings.Repeat("é", 200)
	recorder.Record(context.Background(), "user-1", "task_created", RequestInfo{
		UserAgent: long,
	}, nil)

	entries, err := recorder.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0].UserAgent
	if len(got) > 255 {
		t.Errorf("user agent length = %d, want at most 255", len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
}

func TestRecentClampsLimit(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, true)
	ctx := context.Background()

	for i := 0; i < 210; i++ {
		entry := model.ActivityLog{
			ID:     fmt.Sprintf("entry-%03d", i),
			Action: "task_created",
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	entries, err := recorder.Recent(ctx, 1000000)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 200 {
		t.Errorf("got %d entries, want the 200 cap", len(entries))
	}
}

func TestRecorderSystemActionHasNoUser(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, true)

	recorder.Record(context.Background(), "", "welcome_email_sent", RequestInfo{}, map[string]interface{}{
		"user_id": "user-1",
	})

	entries, _ := recorder.Recent(context.Background(), 10)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].UserID != nil {
		t.Errorf("system action should have a null user, got %v", *entries[0].UserID)
	}
	if entries[0].Metadata["user_id"] != "user-1" {
		t.Errorf("metadata not persisted: %v", entries[0].Metadata)
	}
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db, true)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, action := range []string{"first", "second", "third"} {
		entry := model.ActivityLog{
			ID:        fmt.Sprintf("entry-%d", i),
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	entries, err := recorder.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != "third" || entries[1].Action != "second" {
		t.Errorf("wrong order: %s, %s", entries[0].Action, entries[1].Action)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	tests := []struct {
		name string
		req  RequestInfo
		want string
	}{
		{
			name: "first forwarded hop wins",
			req:  RequestInfo{ForwardedFor: "203.0.113.7, 10.0.0.1", RemoteAddr: "10.0.0.2:4567"},
			want: "203.0.113.7",
		},
		{
			name: "single forwarded value",
			req:  RequestInfo{ForwardedFor: " 203.0.113.7 ", RemoteAddr: "10.0.0.2:4567"},
			want: "203.0.113.7",
		},
		{
			name: "falls back to remote address",
			req:  RequestInfo{RemoteAddr: "10.0.0.2:4567"},
			want: "10.0.0.2",
		},
		{
			name: "remote address without port",
			req:  RequestInfo{RemoteAddr: "10.0.0.2"},
			want: "10.0.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.ClientIP(); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
