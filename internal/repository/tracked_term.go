package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

type TrackedTermRepository interface {
	Create(ctx context.Context, term *entity.TrackedTerm) error
	Get(ctx context.Context, communityID int64, term string) (*entity.TrackedTerm, error)
	GetList(ctx context.Context, communityID int64) ([]entity.TrackedTerm, error)
	Delete(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type trackedTermRepository struct{}

func NewTrackedTermRepository() *trackedTermRepository {
	return &trackedTermRepository{}
}

func (r *trackedTermRepository) Create(ctx context.Context, term *entity.TrackedTerm) error {
	return xcontext.DB(ctx).Create(term).Error
}

func (r *trackedTermRepository) Get(
	ctx context.Context, communityID int64, term string,
) (*entity.TrackedTerm, error) {
	result := &entity.TrackedTerm{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trackedTermRepository) GetList(
	ctx context.Context, communityID int64,
) ([]entity.TrackedTerm, error) {
	var result []entity.TrackedTerm
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("term ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *trackedTermRepository) Delete(ctx context.Context, communityID int64, term string) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.TrackedTerm{}).Error
}

func (r *trackedTermRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.TrackedTerm{}).Error
}
