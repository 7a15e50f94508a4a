package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of a user or system action.
// Rows are never updated after creation; UserID is nullable so entries
// survive the deletion of their actor.
type ActivityLog struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	UserID      *string           `gorm:"size:36;index:idx_activity_user_created,priority:1" json:"user_id,omitempty"`
	Action      string            `gorm:"size:120;not null;index:idx_activity_action_created,priority:1" json:"action"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	RequestPath string            `gorm:"size:255" json:"request_path"`
	IPAddress   string            `gorm:"size:45" json:"ip_address"`
	UserAgent   string            `gorm:"size:255" json:"user_agent"`
	CreatedAt   time.Time         `gorm:"index:idx_activity_action_created,priority:2;index:idx_activity_user_created,priority:2" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
