package model

// Tag is a global label shared across all workspaces and projects.
type Tag struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:40;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:9;not null;default:#64748b" json:"color"`
}

func (Tag) TableName() string { return "tags" }
