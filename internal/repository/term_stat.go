package repository

import (
	"context"
	"time"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TermStatRepository interface {
	Increase(ctx context.Context, communityID int64, term, userID string,
		occurrences int64, at time.Time) error
	Get(ctx context.Context, communityID int64, term string) (*entity.TermStat, error)
	Top(ctx context.Context, communityID int64, limit int) ([]entity.TermStat, error)
	DeleteByTerm(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type termStatRepository struct{}

func NewTermStatRepository() *termStatRepository {
	return &termStatRepository{}
}

func (r *termStatRepository) Increase(
	ctx context.Context, communityID int64, term, userID string,
	occurrences int64, at time.Time,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "community_id"},
				{Name: "term"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_count":       gorm.Expr("total_count + ?", occurrences),
				"last_mentioned_at": at,
				"last_user":         userID,
			}),
		}).Create(&entity.TermStat{
		CommunityID:     communityID,
		Term:            term,
		TotalCount:      occurrences,
		LastMentionedAt: at,
		LastUser:        userID,
	}).Error
}

func (r *termStatRepository) Get(
	ctx context.Context, communityID int64, term string,
) (*entity.TermStat, error) {
	result := &entity.TermStat{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *termStatRepository) Top(
	ctx context.Context, communityID int64, limit int,
) ([]entity.TermStat, error) {
	var result []entity.TermStat
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("total_count DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *termStatRepository) DeleteByTerm(
	ctx context.Context, communityID int64, term string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.TermStat{}).Error
}

func (r *termStatRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.TermStat{}).Error
}
