package entity

import "time"

// TrackedTerm is a term under active measurement, unique per community.
// Terms are stored normalized (trimmed, lowercased unless the community is
// case sensitive at match time; storage is always lowercase).
type TrackedTerm struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Term        string    `gorm:"primaryKey"`

	CreatedAt time.Time
	CreatedBy string
}
