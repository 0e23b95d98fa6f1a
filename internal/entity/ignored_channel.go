package entity

import "time"

type IgnoredChannel struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	ChannelID   int64     `gorm:"primaryKey"`

	CreatedAt time.Time
	CreatedBy string
}
