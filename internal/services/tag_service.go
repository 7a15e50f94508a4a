package services

import (
	"context"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
)

// TagService manages the global tag catalog shared by every board.
type TagService struct {
	tags *repository.TagRepository
}

func NewTagService(tags *repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *TagService) Create(ctx context.Context, name, color string) (*model.Tag, error) {
	taken, err := s.tags.NameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewValidation("name", "a tag with this name already exists")
	}
	if color == "" {
		color = "#64748b"
	}
	return s.tags.Create(ctx, name, color)
}
