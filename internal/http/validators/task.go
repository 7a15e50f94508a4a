package validators

import (
	"strings"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/errs"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	vErr := &errs.ValidationError{}

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		vErr.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		vErr.Add("title", "title must be at most 200 characters")
	}

	if !vErr.Empty() {
		return vErr
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	vErr := &errs.ValidationError{}

	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			vErr.Add("title", "title must not be empty")
		} else if len(*r.Title) > 200 {
			vErr.Add("title", "title must be at most 200 characters")
		}
	}

	if !vErr.Empty() {
		return vErr
	}
	return nil
}

func ValidateCreateCommentRequest(r *dto.CreateCommentRequest) error {
	if strings.TrimSpace(r.Body) == "" {
		return errs.NewValidation("body", "body is required")
	}
	return nil
}

func ValidateCreateTagRequest(r *dto.CreateTagRequest) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errs.NewValidation("name", "name is required")
	}
	if len(r.Name) > 40 {
		return errs.NewValidation("name", "name must be at most 40 characters")
	}
	return nil
}
