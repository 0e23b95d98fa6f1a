package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type KeywordResponseRepository interface {
	Upsert(ctx context.Context, response *entity.KeywordResponse) error
	Get(ctx context.Context, communityID int64, keyword string) (*entity.KeywordResponse, error)
	GetList(ctx context.Context, communityID int64) ([]entity.KeywordResponse, error)
	Delete(ctx context.Context, communityID int64, keyword string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type keywordResponseRepository struct{}

func NewKeywordResponseRepository() *keywordResponseRepository {
	return &keywordResponseRepository{}
}

// Upsert replaces the response of an existing keyword in place.
func (r *keywordResponseRepository) Upsert(
	ctx context.Context, response *entity.KeywordResponse,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "community_id"},
				{Name: "keyword"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"response", "updated_at"}),
		}).
		Create(response).Error
}

func (r *keywordResponseRepository) Get(
	ctx context.Context, communityID int64, keyword string,
) (*entity.KeywordResponse, error) {
	result := &entity.KeywordResponse{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND keyword=?", communityID, keyword).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *keywordResponseRepository) GetList(
	ctx context.Context, communityID int64,
) ([]entity.KeywordResponse, error) {
	var result []entity.KeywordResponse
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("keyword ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *keywordResponseRepository) Delete(
	ctx context.Context, communityID int64, keyword string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND keyword=?", communityID, keyword).
		Delete(&entity.KeywordResponse{}).Error
}

func (r *keywordResponseRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.KeywordResponse{}).Error
}
