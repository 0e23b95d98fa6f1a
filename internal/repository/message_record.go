package repository

import (
	"context"
	"time"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

type SearchMessageFilter struct {
	// CommunityID of 0 searches across all communities.
	CommunityID int64
	Query       string
	Limit       int
}

type MessageRecordRepository interface {
	Create(ctx context.Context, record *entity.MessageRecord) error
	Search(ctx context.Context, filter SearchMessageFilter) ([]entity.MessageRecord, error)
	DeleteBefore(ctx context.Context, communityID int64, before time.Time) (int64, error)
	DeleteByTerm(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
	CountByCommunity(ctx context.Context, communityID int64) (int64, error)
}

type messageRecordRepository struct{}

func NewMessageRecordRepository() *messageRecordRepository {
	return &messageRecordRepository{}
}

func (r *messageRecordRepository) Create(ctx context.Context, record *entity.MessageRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *messageRecordRepository) Search(
	ctx context.Context, filter SearchMessageFilter,
) ([]entity.MessageRecord, error) {
	tx := xcontext.DB(ctx).Model(&entity.MessageRecord{})
	if filter.CommunityID != 0 {
		tx = tx.Where("community_id=?", filter.CommunityID)
	}

	if filter.Query != "" {
		tx = tx.Where("content LIKE ?", "%"+filter.Query+"%")
	}

	var result []entity.MessageRecord
	err := tx.Order("created_at DESC").Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRecordRepository) DeleteBefore(
	ctx context.Context, communityID int64, before time.Time,
) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("community_id=? AND created_at < ?", communityID, before).
		Delete(&entity.MessageRecord{})

	return tx.RowsAffected, tx.Error
}

func (r *messageRecordRepository) DeleteByTerm(
	ctx context.Context, communityID int64, term string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.MessageRecord{}).Error
}

func (r *messageRecordRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.MessageRecord{}).Error
}

func (r *messageRecordRepository) CountByCommunity(
	ctx context.Context, communityID int64,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.MessageRecord{}).
		Where("community_id=?", communityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
