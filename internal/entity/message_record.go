package entity

import "time"

// MessageRecord is the append-only audit trail of counted mentions. It is
// pruned only by the retention sweep or by cascade when a term is
// untracked. PlatformMessageID is kept for audit; it is NOT a dedup key,
// a redelivered platform message is counted again.
type MessageRecord struct {
	ID        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index:idx_message_records_community_created,priority:2"`

	CommunityID int64     `gorm:"index:idx_message_records_community_created,priority:1"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	ChannelID   int64
	UserID      string

	PlatformMessageID int64
	Term              string `gorm:"index"`
	Content           string
}
