package repository

import (
	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/gorm"
)

type StoryRepository struct {
	crud[models.Story]
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{crud: crud[models.Story]{db: db}}
}

func (r *StoryRepository) Update(story *models.Story) error {
	return r.db.Save(story).Error
}
