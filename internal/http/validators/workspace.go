package validators

import (
	"strings"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/errs"
)

func ValidateCreateWorkspaceRequest(r *dto.CreateWorkspaceRequest) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errs.NewValidation("name", "name is required")
	}
	if len(r.Name) > 120 {
		return errs.NewValidation("name", "name must be at most 120 characters")
	}
	return nil
}

func ValidateInviteMemberRequest(r *dto.InviteMemberRequest) error {
	r.Identifier = strings.TrimSpace(r.Identifier)
	if r.Identifier == "" {
		return errs.NewValidation("identifier", "username or email is required")
	}
	return nil
}

func ValidateCreateProjectRequest(r *dto.CreateProjectRequest) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errs.NewValidation("title", "title is required")
	}
	if len(r.Title) > 160 {
		return errs.NewValidation("title", "title must be at most 160 characters")
	}
	return nil
}

func ValidateColumnRequest(r *dto.ColumnRequest) error {
	vErr := &errs.ValidationError{}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		vErr.Add("name", "name is required")
	} else if len(r.Name) > 60 {
		vErr.Add("name", "name must be at most 60 characters")
	}
	if r.Order < 0 {
		vErr.Add("order", "order must not be negative")
	}

	if !vErr.Empty() {
		return vErr
	}
	return nil
}
