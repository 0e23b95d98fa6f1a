package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CommunityRepository interface {
	Upsert(ctx context.Context, community *entity.Community) error
	GetAllIDs(ctx context.Context) ([]int64, error)
	Delete(ctx context.Context, communityID int64) error
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Upsert(ctx context.Context, community *entity.Community) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"display_name": community.DisplayName,
			}),
		}).Create(community).Error
}

func (r *communityRepository) GetAllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).Model(&entity.Community{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *communityRepository) Delete(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("id=?", communityID).
		Delete(&entity.Community{}).Error
}
