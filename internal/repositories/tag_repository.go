package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/taskboard/taskboard/internal/models"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *TagRepository) Create(ctx context.Context, name, color string) (*model.Tag, error) {
	tag := &model.Tag{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// FindByIDs returns the tags for the given ids; missing ids are simply
// absent from the result.
func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
