package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

type TimeoutPhraseRepository interface {
	Create(ctx context.Context, phrase *entity.TimeoutPhrase) error
	Exist(ctx context.Context, communityID int64, phrase string) (bool, error)
	GetList(ctx context.Context, communityID int64) ([]entity.TimeoutPhrase, error)
	Delete(ctx context.Context, communityID int64, phrase string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type timeoutPhraseRepository struct{}

func NewTimeoutPhraseRepository() *timeoutPhraseRepository {
	return &timeoutPhraseRepository{}
}

func (r *timeoutPhraseRepository) Create(ctx context.Context, phrase *entity.TimeoutPhrase) error {
	return xcontext.DB(ctx).Create(phrase).Error
}

func (r *timeoutPhraseRepository) Exist(
	ctx context.Context, communityID int64, phrase string,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.TimeoutPhrase{}).
		Where("community_id=? AND phrase=?", communityID, phrase).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *timeoutPhraseRepository) GetList(
	ctx context.Context, communityID int64,
) ([]entity.TimeoutPhrase, error) {
	var result []entity.TimeoutPhrase
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("phrase ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *timeoutPhraseRepository) Delete(
	ctx context.Context, communityID int64, phrase string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND phrase=?", communityID, phrase).
		Delete(&entity.TimeoutPhrase{}).Error
}

func (r *timeoutPhraseRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.TimeoutPhrase{}).Error
}
