package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a card on a board. Its column must always belong to the same
// project as the task itself. Creator never changes after creation.
// Archived is a one-way visibility state; archived tasks stay out of
// board views but are not deleted.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ProjectID   string     `gorm:"size:36;not null;index:idx_tasks_project_priority,priority:1;index:idx_tasks_project_due,priority:1" json:"project_id"`
	ColumnID    string     `gorm:"size:36;not null;index" json:"column_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:medium;index:idx_tasks_project_priority,priority:2" json:"priority"`
	DueDate     *time.Time `gorm:"index:idx_tasks_project_due,priority:2" json:"due_date,omitempty"`
	CreatorID   string     `gorm:"size:36;not null" json:"creator_id"`
	Archived    bool       `gorm:"not null;default:false" json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Creator   *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignees []User    `gorm:"many2many:task_assignees" json:"assignees,omitempty"`
	Tags      []Tag     `gorm:"many2many:task_tags" json:"tags,omitempty"`
	Comments  []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

func (Task) TableName() string { return "tasks" }

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"task_id"`
	AuthorID  string    `gorm:"size:36;not null" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
