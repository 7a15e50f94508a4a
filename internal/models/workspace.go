package model

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Workspace is the top-level tenant. It owns its projects and
// memberships; deleting one removes everything underneath it.
type Workspace struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	Owner    *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Projects []Project         `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`
	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
}

func (Workspace) TableName() string { return "workspaces" }

type WorkspaceMember struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	WorkspaceID string    `gorm:"size:36;not null;uniqueIndex:uk_workspace_user" json:"workspace_id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:uk_workspace_user;index" json:"user_id"`
	Role        Role      `gorm:"type:varchar(10);not null;default:member" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (WorkspaceMember) TableName() string { return "workspace_members" }
