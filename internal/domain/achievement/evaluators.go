package achievement

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
)

// totalMentionsEvaluator satisfies when the user's counted mentions across
// all terms reach the threshold.
type totalMentionsEvaluator struct {
	userStatRepo repository.UserTermStatRepository
}

func NewTotalMentionsEvaluator(userStatRepo repository.UserTermStatRepository) *totalMentionsEvaluator {
	return &totalMentionsEvaluator{userStatRepo: userStatRepo}
}

func (*totalMentionsEvaluator) RequirementType() entity.AchievementRequirement {
	return entity.RequirementTotalMentions
}

func (e *totalMentionsEvaluator) Evaluate(
	ctx context.Context, communityID int64, userID string, requirementValue int64,
) (bool, error) {
	total, err := e.userStatRepo.TotalByUser(ctx, communityID, userID)
	if err != nil {
		return false, err
	}

	return total >= requirementValue, nil
}

type distinctTermsEvaluator struct {
	userStatRepo repository.UserTermStatRepository
}

func NewDistinctTermsEvaluator(userStatRepo repository.UserTermStatRepository) *distinctTermsEvaluator {
	return &distinctTermsEvaluator{userStatRepo: userStatRepo}
}

func (*distinctTermsEvaluator) RequirementType() entity.AchievementRequirement {
	return entity.RequirementDistinctTerms
}

func (e *distinctTermsEvaluator) Evaluate(
	ctx context.Context, communityID int64, userID string, requirementValue int64,
) (bool, error) {
	count, err := e.userStatRepo.CountDistinctTerms(ctx, communityID, userID)
	if err != nil {
		return false, err
	}

	return count >= requirementValue, nil
}

type singleTermCountEvaluator struct {
	userStatRepo repository.UserTermStatRepository
}

func NewSingleTermCountEvaluator(userStatRepo repository.UserTermStatRepository) *singleTermCountEvaluator {
	return &singleTermCountEvaluator{userStatRepo: userStatRepo}
}

func (*singleTermCountEvaluator) RequirementType() entity.AchievementRequirement {
	return entity.RequirementSingleTermCount
}

func (e *singleTermCountEvaluator) Evaluate(
	ctx context.Context, communityID int64, userID string, requirementValue int64,
) (bool, error) {
	max, err := e.userStatRepo.MaxSingleTerm(ctx, communityID, userID)
	if err != nil {
		return false, err
	}

	return max >= requirementValue, nil
}

// firstMentionEvaluator awards on the first counted mention; the
// requirement value is ignored.
type firstMentionEvaluator struct {
	userStatRepo repository.UserTermStatRepository
}

func NewFirstMentionEvaluator(userStatRepo repository.UserTermStatRepository) *firstMentionEvaluator {
	return &firstMentionEvaluator{userStatRepo: userStatRepo}
}

func (*firstMentionEvaluator) RequirementType() entity.AchievementRequirement {
	return entity.RequirementFirstMention
}

func (e *firstMentionEvaluator) Evaluate(
	ctx context.Context, communityID int64, userID string, _ int64,
) (bool, error) {
	total, err := e.userStatRepo.TotalByUser(ctx, communityID, userID)
	if err != nil {
		return false, err
	}

	return total >= 1, nil
}
