package entity

import "time"

type UserTermStat struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Term        string    `gorm:"primaryKey"`
	UserID      string    `gorm:"primaryKey"`

	Count      int64
	LastSeenAt time.Time
}
