package entity

import "time"

// KeywordResponse maps a keyword to canned reply text. The engine only
// stores and lists these; delivering the reply is the platform adapter's
// job.
type KeywordResponse struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Keyword     string    `gorm:"primaryKey"`
	Response    string

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
