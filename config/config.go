package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database DatabaseConfigs
	Redis    RedisConfigs
	Tracker  TrackerConfigs
	Cron     CronConfigs
}

type DatabaseConfigs struct {
	Driver   string // "mysql" or "sqlite"
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type TrackerConfigs struct {
	// CommandPrefix marks messages that are admin commands rather than
	// chat; the matcher skips them when the community ignores commands.
	CommandPrefix string

	// AchievementQueueSize bounds the post-commit evaluation queue. When
	// full, the oldest pending evaluation is dropped.
	AchievementQueueSize int
}

type CronConfigs struct {
	RetentionSweepInterval time.Duration
	DailySummaryHourUTC    int
}
