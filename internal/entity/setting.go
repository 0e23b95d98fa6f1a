package entity

import "time"

// settingSchemaVersion is bumped whenever a field is added to Setting.
// Normalize upgrades older rows field by field instead of merging maps.
const settingSchemaVersion = 2

type Setting struct {
	CommunityID int64     `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`
	UpdatedAt   time.Time

	IgnoreCommands        bool
	CaseSensitive         bool
	MinWordLength         int
	CooldownSeconds       int
	AutoCleanupDays       int
	NotificationChannelID int64
	DailySummary          bool
	ThemeColor            string

	SchemaVersion int
}

// DefaultSetting is what reads return before a community ever writes a
// setting. The row is only persisted on first mutation.
func DefaultSetting(communityID int64) *Setting {
	return &Setting{
		CommunityID:     communityID,
		IgnoreCommands:  true,
		CaseSensitive:   false,
		MinWordLength:   2,
		CooldownSeconds: 0,
		AutoCleanupDays: 0,
		ThemeColor:      "#5865f2",
		SchemaVersion:   settingSchemaVersion,
	}
}

// Normalize upgrades a row written by an older schema to the current one.
// Only fields introduced after the row's version are defaulted; everything
// the community already chose is kept.
func (s *Setting) Normalize() {
	if s.SchemaVersion < 2 && s.ThemeColor == "" {
		s.ThemeColor = "#5865f2"
	}

	s.SchemaVersion = settingSchemaVersion
}
