package telemetry

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/taskboard/taskboard/internal/models"
)

const maxFieldLen = 255

// RequestInfo carries the request metadata worth keeping with an
// activity entry. A zero value is fine for system-triggered actions.
type RequestInfo struct {
	Path          string
	ForwardedFor  string
	RemoteAddr    string
	UserAgent     string
}

// ClientIP prefers the first hop of X-Forwarded-For, falling back to
// the connection's remote address.
func (r RequestInfo) ClientIP() string {
	if r.ForwardedFor != "" {
		first, _, _ := strings.Cut(r.ForwardedFor, ",")
		return strings.TrimSpace(first)
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}

// Recorder appends activity entries. It never fails the calling
// operation: storage errors are logged and swallowed, and when
// disabled every call is a no-op.
type Recorder struct {
	db      *gorm.DB
	enabled bool
}

func NewRecorder(db *gorm.DB, enabled bool) *Recorder {
	return &Recorder{db: db, enabled: enabled}
}

// Record appends one entry. userID may be empty for system actions.
func (r *Recorder) Record(ctx context.Context, userID string, action string, req RequestInfo, metadata map[string]interface{}) {
	if !r.enabled {
		return
	}

	entry := model.ActivityLog{
		ID:          uuid.NewString(),
		Action:      action,
		Metadata:    datatypes.JSONMap(metadata),
		RequestPath: truncate(req.Path),
		IPAddress:   req.ClientIP(),
		UserAgent:   truncate(req.UserAgent),
	}
	if userID != "" {
		entry.UserID = &userID
	}

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("failed to record activity %q: %v", action, err)
	}
}

const maxRecentLimit = 200

// Recent returns the latest entries, newest first. The limit is
// clamped to maxRecentLimit so a caller can never drag in the whole
// table.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func truncate(s string) string {
	if len(s) <= maxFieldLen {
		return s
	}
	// Back up to a rune boundary so the stored value stays valid UTF-8.
	cut := maxFieldLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
