package model

import "time"

// Project is a board within a workspace, holding ordered columns.
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	WorkspaceID string    `gorm:"size:36;not null;index" json:"workspace_id"`
	Title       string    `gorm:"size:160;not null" json:"title"`
	CreatedAt   time.Time `json:"created_at"`

	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Columns   []Column   `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
}

func (Project) TableName() string { return "projects" }

// Column is a lane on a board. Name is unique per project and Order
// defines the left-to-right position. Tasks inside a column carry no
// persisted ordering of their own.
type Column struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string `gorm:"size:36;not null;uniqueIndex:uk_project_column_name" json:"project_id"`
	Name      string `gorm:"size:60;not null;uniqueIndex:uk_project_column_name" json:"name"`
	Order     int    `gorm:"column:position;not null;default:0" json:"order"`
	Color     string `gorm:"size:9;not null;default:#1f2937" json:"color"`
}

func (Column) TableName() string { return "columns" }

// DefaultColumn describes one of the lanes seeded onto every new board.
type DefaultColumn struct {
	Name  string
	Color string
}

// DefaultColumns are created, in order, whenever a project is created.
var DefaultColumns = []DefaultColumn{
	{Name: "Backlog", Color: "#111827"},
	{Name: "Todo", Color: "#1f2937"},
	{Name: "In Progress", Color: "#374151"},
	{Name: "Done", Color: "#065f46"},
}
