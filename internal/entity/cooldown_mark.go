package entity

import "time"

// CooldownMark records the last counted increment for one (community, user,
// canonical term) triple. LastIncrementAt is monotonically non-decreasing.
// No row is ever written while the community's cooldown is zero.
type CooldownMark struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	UserID      string    `gorm:"primaryKey"`
	Term        string    `gorm:"primaryKey"`

	LastIncrementAt time.Time
}
