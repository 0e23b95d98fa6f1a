package repository

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

type TermAliasRepository interface {
	Create(ctx context.Context, alias *entity.TermAlias) error
	Get(ctx context.Context, communityID int64, alias string) (*entity.TermAlias, error)
	GetList(ctx context.Context, communityID int64) ([]entity.TermAlias, error)
	Delete(ctx context.Context, communityID int64, alias string) error
	DeleteByCanonicalTerm(ctx context.Context, communityID int64, canonicalTerm string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type termAliasRepository struct{}

func NewTermAliasRepository() *termAliasRepository {
	return &termAliasRepository{}
}

func (r *termAliasRepository) Create(ctx context.Context, alias *entity.TermAlias) error {
	return xcontext.DB(ctx).Create(alias).Error
}

func (r *termAliasRepository) Get(
	ctx context.Context, communityID int64, alias string,
) (*entity.TermAlias, error) {
	result := &entity.TermAlias{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND alias=?", communityID, alias).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *termAliasRepository) GetList(
	ctx context.Context, communityID int64,
) ([]entity.TermAlias, error) {
	var result []entity.TermAlias
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("alias ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *termAliasRepository) Delete(ctx context.Context, communityID int64, alias string) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND alias=?", communityID, alias).
		Delete(&entity.TermAlias{}).Error
}

func (r *termAliasRepository) DeleteByCanonicalTerm(
	ctx context.Context, communityID int64, canonicalTerm string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND canonical_term=?", communityID, canonicalTerm).
		Delete(&entity.TermAlias{}).Error
}

func (r *termAliasRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.TermAlias{}).Error
}
