package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

type ForbiddenPhraseRepository interface {
	Create(ctx context.Context, phrase *entity.ForbiddenPhrase) error
	Exist(ctx context.Context, communityID int64, phrase string) (bool, error)
	GetList(ctx context.Context, communityID int64) ([]entity.ForbiddenPhrase, error)
	Delete(ctx context.Context, communityID int64, phrase string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type forbiddenPhraseRepository struct{}

func NewForbiddenPhraseRepository() *forbiddenPhraseRepository {
	return &forbiddenPhraseRepository{}
}

func (r *forbiddenPhraseRepository) Create(
	ctx context.Context, phrase *entity.ForbiddenPhrase,
) error {
	return xcontext.DB(ctx).Create(phrase).Error
}

func (r *forbiddenPhraseRepository) Exist(
	ctx context.Context, communityID int64, phrase string,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ForbiddenPhrase{}).
		Where("community_id=? AND phrase=?", communityID, phrase).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *forbiddenPhraseRepository) GetList(
	ctx context.Context, communityID int64,
) ([]entity.ForbiddenPhrase, error) {
	var result []entity.ForbiddenPhrase
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("phrase ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *forbiddenPhraseRepository) Delete(
	ctx context.Context, communityID int64, phrase string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND phrase=?", communityID, phrase).
		Delete(&entity.ForbiddenPhrase{}).Error
}

func (r *forbiddenPhraseRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.ForbiddenPhrase{}).Error
}
