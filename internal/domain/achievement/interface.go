package achievement

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
)

// Evaluator decides whether one requirement type is satisfied for a user.
// Evaluators only read counters; awarding is the manager's job.
type Evaluator interface {
	// RequirementType returns the definition type this evaluator handles.
	RequirementType() entity.AchievementRequirement

	// Evaluate reports whether the user currently satisfies the
	// requirement value in the given community.
	Evaluate(ctx context.Context, communityID int64, userID string, requirementValue int64) (bool, error)
}
