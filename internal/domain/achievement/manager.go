package achievement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/xcontext"
)

type Manager struct {
	// This field is only written at initialization. After that, it is
	// readonly, so no sync map is needed.
	evaluators map[entity.AchievementRequirement]Evaluator

	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
}

func NewManager(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	evaluators ...Evaluator,
) *Manager {
	manager := &Manager{
		evaluators:          make(map[entity.AchievementRequirement]Evaluator),
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
	}

	for _, e := range evaluators {
		manager.evaluators[e.RequirementType()] = e
	}

	return manager
}

// ScanAndAward re-evaluates every definition the user has not earned yet
// and inserts each qualifying award independently. The unique key on
// (community, user, achievement) makes repeated scans idempotent; a
// failure on one definition does not stop the others.
func (m *Manager) ScanAndAward(ctx context.Context, communityID int64, userID string) error {
	definitions, err := m.achievementRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	earnedIDs, err := m.userAchievementRepo.GetEarnedIDs(ctx, communityID, userID)
	if err != nil {
		return err
	}

	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var lastErr error
	for _, def := range definitions {
		if earned[def.ID] {
			continue
		}

		evaluator, ok := m.evaluators[def.RequirementType]
		if !ok {
			xcontext.Logger(ctx).Warnf("No evaluator for requirement type %s", def.RequirementType)
			continue
		}

		qualified, err := evaluator.Evaluate(ctx, communityID, userID, def.RequirementValue)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot evaluate achievement %s: %v", def.Name, err)
			lastErr = err
			continue
		}

		if !qualified {
			continue
		}

		err = m.userAchievementRepo.Create(ctx, &entity.UserAchievement{
			CommunityID:   communityID,
			UserID:        userID,
			AchievementID: def.ID,
			EarnedAt:      time.Now(),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award achievement %s: %v", def.Name, err)
			lastErr = err
		}
	}

	return lastErr
}

// SeedDefinitions upserts the built-in achievement definitions, keyed by
// name so redeploys keep existing IDs and awards.
func SeedDefinitions(ctx context.Context, achievementRepo repository.AchievementRepository) error {
	definitions := []*entity.Achievement{
		{
			ID:               uuid.NewString(),
			Name:             "Getting Started",
			Description:      "Counted for the first time.",
			RequirementType:  entity.RequirementFirstMention,
			RequirementValue: 1,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Chatterbox",
			Description:      "100 counted mentions in one community.",
			RequirementType:  entity.RequirementTotalMentions,
			RequirementValue: 100,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Word Collector",
			Description:      "Mentioned 10 distinct tracked terms.",
			RequirementType:  entity.RequirementDistinctTerms,
			RequirementValue: 10,
		},
		{
			ID:               uuid.NewString(),
			Name:             "One Track Mind",
			Description:      "50 mentions of a single term.",
			RequirementType:  entity.RequirementSingleTermCount,
			RequirementValue: 50,
		},
	}

	for _, def := range definitions {
		if err := achievementRepo.Upsert(ctx, def); err != nil {
			return err
		}
	}

	return nil
}
