package entity

// DailyStat is the per-day rollup of counted mentions. Date uses the
// dateutil.DayLayout bucket key ("2006-01-02", UTC). Only the counter
// transaction and the cascade delete ever write it.
type DailyStat struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	Date        string    `gorm:"primaryKey"`
	Term        string    `gorm:"primaryKey"`

	TotalMentions int64
}
