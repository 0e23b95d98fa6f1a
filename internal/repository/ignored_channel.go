package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type IgnoredChannelRepository interface {
	Create(ctx context.Context, channel *entity.IgnoredChannel) error
	Delete(ctx context.Context, communityID, channelID int64) error
	Exist(ctx context.Context, communityID, channelID int64) (bool, error)
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type ignoredChannelRepository struct{}

func NewIgnoredChannelRepository() *ignoredChannelRepository {
	return &ignoredChannelRepository{}
}

func (r *ignoredChannelRepository) Create(ctx context.Context, channel *entity.IgnoredChannel) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(channel).Error
}

func (r *ignoredChannelRepository) Delete(ctx context.Context, communityID, channelID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND channel_id=?", communityID, channelID).
		Delete(&entity.IgnoredChannel{}).Error
}

func (r *ignoredChannelRepository) Exist(
	ctx context.Context, communityID, channelID int64,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.IgnoredChannel{}).
		Where("community_id=? AND channel_id=?", communityID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ignoredChannelRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.IgnoredChannel{}).Error
}
