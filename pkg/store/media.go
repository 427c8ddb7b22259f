package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/chirpnet/chirpd/pkg/models"
)

// ============================================
// MEDIA OPERATIONS
// ============================================

func (s *GORMStore) CreateMedia(ctx context.Context, media []*models.Media) error {
	if len(media) == 0 {
		return nil
	}

	for _, m := range media {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	// Single batch insert; GORM back-fills the generated IDs.
	return s.db.WithContext(ctx).Create(&media).Error
}

func (s *GORMStore) UpdateMediaFiles(ctx context.Context, media []*models.Media) error {
	if len(media) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range media {
			result := tx.Model(&models.Media{}).
				Where("id = ?", m.ID).
				Update("file", m.File)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.ErrMediaNotFound
			}
		}
		return nil
	})
}

func (s *GORMStore) GetMediaByIDs(ctx context.Context, ids []int64) ([]*models.Media, error) {
	var media []*models.Media
	if len(ids) == 0 {
		return media, nil
	}

	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}
