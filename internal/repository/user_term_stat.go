package repository

import (
	"context"
	"time"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserTermStatRepository interface {
	Increase(ctx context.Context, communityID int64, term, userID string,
		occurrences int64, at time.Time) error
	Get(ctx context.Context, communityID int64, term, userID string) (*entity.UserTermStat, error)
	Leaderboard(ctx context.Context, communityID int64, term string,
		offset, limit int) ([]entity.UserTermStat, error)
	GetAllByTerm(ctx context.Context, communityID int64, term string) ([]entity.UserTermStat, error)

	// Aggregations used by achievement scanners.
	TotalByUser(ctx context.Context, communityID int64, userID string) (int64, error)
	CountDistinctTerms(ctx context.Context, communityID int64, userID string) (int64, error)
	MaxSingleTerm(ctx context.Context, communityID int64, userID string) (int64, error)

	DeleteByTerm(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type userTermStatRepository struct{}

func NewUserTermStatRepository() *userTermStatRepository {
	return &userTermStatRepository{}
}

func (r *userTermStatRepository) Increase(
	ctx context.Context, communityID int64, term, userID string,
	occurrences int64, at time.Time,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "community_id"},
				{Name: "term"},
				{Name: "user_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":        gorm.Expr("count + ?", occurrences),
				"last_seen_at": at,
			}),
		}).Create(&entity.UserTermStat{
		CommunityID: communityID,
		Term:        term,
		UserID:      userID,
		Count:       occurrences,
		LastSeenAt:  at,
	}).Error
}

func (r *userTermStatRepository) Get(
	ctx context.Context, communityID int64, term, userID string,
) (*entity.UserTermStat, error) {
	result := &entity.UserTermStat{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=? AND user_id=?", communityID, term, userID).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userTermStatRepository) Leaderboard(
	ctx context.Context, communityID int64, term string, offset, limit int,
) ([]entity.UserTermStat, error) {
	var result []entity.UserTermStat
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Order("count DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userTermStatRepository) GetAllByTerm(
	ctx context.Context, communityID int64, term string,
) ([]entity.UserTermStat, error) {
	var result []entity.UserTermStat
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userTermStatRepository) TotalByUser(
	ctx context.Context, communityID int64, userID string,
) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.UserTermStat{}).
		Select("COALESCE(SUM(count), 0)").
		Where("community_id=? AND user_id=?", communityID, userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *userTermStatRepository) CountDistinctTerms(
	ctx context.Context, communityID int64, userID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.UserTermStat{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userTermStatRepository) MaxSingleTerm(
	ctx context.Context, communityID int64, userID string,
) (int64, error) {
	var max int64
	err := xcontext.DB(ctx).Model(&entity.UserTermStat{}).
		Select("COALESCE(MAX(count), 0)").
		Where("community_id=? AND user_id=?", communityID, userID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}

	return max, nil
}

func (r *userTermStatRepository) DeleteByTerm(
	ctx context.Context, communityID int64, term string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.UserTermStat{}).Error
}

func (r *userTermStatRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.UserTermStat{}).Error
}
