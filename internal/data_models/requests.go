package dto

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

type InviteMemberRequest struct {
	Identifier string `json:"identifier"`
}

type CreateProjectRequest struct {
	Title string `json:"title"`
}

type ColumnRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date"`
	ColumnID    string   `json:"column_id"`
	AssigneeIDs []string `json:"assignee_ids"`
	TagIDs      []string `json:"tag_ids"`
}

// UpdateTaskRequest is a partial update; absent fields are untouched.
// An empty due_date string clears the due date.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"due_date"`
	ColumnID    *string   `json:"column_id"`
	AssigneeIDs *[]string `json:"assignee_ids"`
	TagIDs      *[]string `json:"tag_ids"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
