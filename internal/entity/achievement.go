package entity

import "time"

type AchievementRequirement string

const (
	// RequirementTotalMentions compares against the user's total counted
	// mentions across all terms in the community.
	RequirementTotalMentions AchievementRequirement = "total_mentions"

	// RequirementDistinctTerms compares against the number of distinct
	// terms the user has mentioned in the community.
	RequirementDistinctTerms AchievementRequirement = "distinct_terms"

	// RequirementSingleTermCount compares against the user's highest count
	// on any single term in the community.
	RequirementSingleTermCount AchievementRequirement = "single_term_count"

	// RequirementFirstMention awards on the first counted mention ever.
	RequirementFirstMention AchievementRequirement = "first_mention"
)

type Achievement struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name             string `gorm:"unique"`
	Description      string
	RequirementType  AchievementRequirement
	RequirementValue int64
}

// UserAchievement is unique per (community, user, achievement); the
// composite primary key makes repeated evaluation idempotent.
type UserAchievement struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	UserID      string    `gorm:"primaryKey"`

	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	EarnedAt time.Time
}
