package entity

import "time"

// TermAlias redirects an alias surface form to the tracked term that owns
// the counters. The canonical term must exist in the same community; the
// cascade on untrack removes aliases with it.
type TermAlias struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Alias       string    `gorm:"primaryKey"`

	CanonicalTerm string `gorm:"index"`
	CreatedAt     time.Time
}
