package entity

import "time"

type TimeoutPhrase struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Phrase      string    `gorm:"primaryKey"`

	CreatedAt time.Time
	CreatedBy string
}
