package repository

import (
	"context"
	"errors"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	// Get never fails with a not-found: a community without a persisted
	// row gets the defaults. Rows written by earlier schema versions are
	// normalized before they are returned.
	Get(ctx context.Context, communityID int64) (*entity.Setting, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
	GetAllWithCleanup(ctx context.Context) ([]entity.Setting, error)
	GetAllWithDailySummary(ctx context.Context) ([]entity.Setting, error)
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type settingRepository struct{}

func NewSettingRepository() *settingRepository {
	return &settingRepository{}
}

func (r *settingRepository) Get(ctx context.Context, communityID int64) (*entity.Setting, error) {
	result := &entity.Setting{}
	err := xcontext.DB(ctx).Where("community_id=?", communityID).Take(result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.DefaultSetting(communityID), nil
		}

		return nil, err
	}

	result.Normalize()
	return result, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}},
			UpdateAll: true,
		}).Create(setting).Error
}

func (r *settingRepository) GetAllWithCleanup(ctx context.Context) ([]entity.Setting, error) {
	var result []entity.Setting
	err := xcontext.DB(ctx).Where("auto_cleanup_days > 0").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *settingRepository) GetAllWithDailySummary(ctx context.Context) ([]entity.Setting, error) {
	var result []entity.Setting
	err := xcontext.DB(ctx).
		Where("daily_summary = ? AND notification_channel_id != 0", true).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *settingRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.Setting{}).Error
}
