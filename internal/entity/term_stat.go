package entity

import "time"

// TermStat is the per-term aggregate. TotalCount always equals the sum of
// UserTermStat.Count over the same (community, term): both are written in
// the same transaction.
type TermStat struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Term        string    `gorm:"primaryKey"`

	TotalCount      int64
	LastMentionedAt time.Time
	LastUser        string
}
