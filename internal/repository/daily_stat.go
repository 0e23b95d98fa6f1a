package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatRepository interface {
	Increase(ctx context.Context, communityID int64, date, term string, occurrences int64) error
	GetByDate(ctx context.Context, communityID int64, date string) ([]entity.DailyStat, error)
	GetSeries(ctx context.Context, communityID int64, term string, dates []string) ([]entity.DailyStat, error)
	DeleteByTerm(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type dailyStatRepository struct{}

func NewDailyStatRepository() *dailyStatRepository {
	return &dailyStatRepository{}
}

func (r *dailyStatRepository) Increase(
	ctx context.Context, communityID int64, date, term string, occurrences int64,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "community_id"},
				{Name: "date"},
				{Name: "term"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_mentions": gorm.Expr("total_mentions + ?", occurrences),
			}),
		}).Create(&entity.DailyStat{
		CommunityID:   communityID,
		Date:          date,
		Term:          term,
		TotalMentions: occurrences,
	}).Error
}

func (r *dailyStatRepository) GetByDate(
	ctx context.Context, communityID int64, date string,
) ([]entity.DailyStat, error) {
	var result []entity.DailyStat
	err := xcontext.DB(ctx).
		Where("community_id=? AND date=?", communityID, date).
		Order("total_mentions DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyStatRepository) GetSeries(
	ctx context.Context, communityID int64, term string, dates []string,
) ([]entity.DailyStat, error) {
	var result []entity.DailyStat
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=? AND date IN ?", communityID, term, dates).
		Order("date ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyStatRepository) DeleteByTerm(
	ctx context.Context, communityID int64, term string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.DailyStat{}).Error
}

func (r *dailyStatRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.DailyStat{}).Error
}
