package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	Upsert(ctx context.Context, achievement *entity.Achievement) error
	GetAll(ctx context.Context) ([]entity.Achievement, error)
	GetByName(ctx context.Context, name string) (*entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) Upsert(ctx context.Context, achievement *entity.Achievement) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"description":       achievement.Description,
				"requirement_type":  achievement.RequirementType,
				"requirement_value": achievement.RequirementValue,
			}),
		}).Create(achievement).Error
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	if err := xcontext.DB(ctx).Order("name ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementRepository) GetByName(
	ctx context.Context, name string,
) (*entity.Achievement, error) {
	result := &entity.Achievement{}
	if err := xcontext.DB(ctx).Where("name=?", name).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

type UserAchievementRepository interface {
	// Create awards an achievement. The composite primary key guarantees
	// at-most-once even when evaluation repeats; a conflict is a no-op.
	Create(ctx context.Context, award *entity.UserAchievement) error
	GetList(ctx context.Context, communityID int64, userID string) ([]entity.UserAchievement, error)
	GetEarnedIDs(ctx context.Context, communityID int64, userID string) ([]string, error)
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type userAchievementRepository struct{}

func NewUserAchievementRepository() *userAchievementRepository {
	return &userAchievementRepository{}
}

func (r *userAchievementRepository) Create(ctx context.Context, award *entity.UserAchievement) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(award).Error
}

func (r *userAchievementRepository) GetList(
	ctx context.Context, communityID int64, userID string,
) ([]entity.UserAchievement, error) {
	var result []entity.UserAchievement
	err := xcontext.DB(ctx).
		Where("community_id=? AND user_id=?", communityID, userID).
		Order("earned_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userAchievementRepository) GetEarnedIDs(
	ctx context.Context, communityID int64, userID string,
) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).Model(&entity.UserAchievement{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *userAchievementRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.UserAchievement{}).Error
}
