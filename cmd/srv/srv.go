package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/termwatch/backend/config"
	"github.com/termwatch/backend/internal/client"
	"github.com/termwatch/backend/internal/domain"
	"github.com/termwatch/backend/internal/domain/achievement"
	"github.com/termwatch/backend/internal/domain/matcher"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/migration"
	"github.com/termwatch/backend/pkg/logger"
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/termwatch/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	session     client.PlatformSession
	redisClient xredis.Client

	communityRepo       repository.CommunityRepository
	termRepo            repository.TrackedTermRepository
	aliasRepo           repository.TermAliasRepository
	settingRepo         repository.SettingRepository
	termStatRepo        repository.TermStatRepository
	userStatRepo        repository.UserTermStatRepository
	messageRepo         repository.MessageRecordRepository
	cooldownRepo        repository.CooldownMarkRepository
	dailyStatRepo       repository.DailyStatRepository
	ignoredChannelRepo  repository.IgnoredChannelRepository
	forbiddenPhraseRepo repository.ForbiddenPhraseRepository
	timeoutPhraseRepo   repository.TimeoutPhraseRepository
	keywordResponseRepo repository.KeywordResponseRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository

	cache             *matcher.Cache
	leaderboard       statistic.Leaderboard
	achievementWorker *achievement.Worker

	trackerDomain    domain.TrackerDomain
	configDomain     domain.ConfigDomain
	moderationDomain domain.ModerationDomain
	statisticDomain  domain.StatisticDomain
	reconcileDomain  domain.ReconcileDomain
}

func (s *srv) loadDefault() {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.loadConfig())
	s.ctx = xcontext.WithLogger(s.ctx,
		logger.NewLogger(logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))))
}

func (s *srv) loadConfig() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "dev"),
		Database: config.DatabaseConfigs{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "termwatch"),
			User:     getEnv("MYSQL_USER", "termwatch"),
			Password: getEnv("MYSQL_PASSWORD", "termwatch"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Tracker: config.TrackerConfigs{
			CommandPrefix:        getEnv("COMMAND_PREFIX", "!"),
			AchievementQueueSize: getEnvAsInt("ACHIEVEMENT_QUEUE_SIZE", 64),
		},
		Cron: config.CronConfigs{
			RetentionSweepInterval: getEnvAsDuration("RETENTION_SWEEP_INTERVAL", time.Hour),
			DailySummaryHourUTC:    getEnvAsInt("DAILY_SUMMARY_HOUR_UTC", 8),
		},
	}
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)

	var dialector gorm.Dialector
	if cfg.Database.Driver == "sqlite" {
		dialector = sqlite.Open(cfg.Database.ConnectionString())
	} else {
		dialector = mysql.Open(cfg.Database.ConnectionString())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

// loadSession creates the in-process session the host platform adapter
// feeds. Connecting and authenticating against the platform are out of
// the engine's hands.
func (s *srv) loadSession() {
	session := client.NewLocalSession(getEnvAsInt("SESSION_BUFFER", 256))

	// Startup reconciliation purges every community absent from the
	// reachable set, so the set must be declared, never assumed. Without
	// it the session reports the set as unknown and startup aborts.
	if raw, ok := os.LookupEnv("ACTIVE_COMMUNITIES"); ok {
		ids, err := parseCommunityIDs(raw)
		if err != nil {
			panic(err)
		}

		session.SetActiveCommunities(ids, nil)
	}

	s.session = session
}

func parseCommunityIDs(raw string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid community id %q", part)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func (s *srv) loadRepos() {
	s.communityRepo = repository.NewCommunityRepository()
	s.termRepo = repository.NewTrackedTermRepository()
	s.aliasRepo = repository.NewTermAliasRepository()
	s.settingRepo = repository.NewSettingRepository()
	s.termStatRepo = repository.NewTermStatRepository()
	s.userStatRepo = repository.NewUserTermStatRepository()
	s.messageRepo = repository.NewMessageRecordRepository()
	s.cooldownRepo = repository.NewCooldownMarkRepository()
	s.dailyStatRepo = repository.NewDailyStatRepository()
	s.ignoredChannelRepo = repository.NewIgnoredChannelRepository()
	s.forbiddenPhraseRepo = repository.NewForbiddenPhraseRepository()
	s.timeoutPhraseRepo = repository.NewTimeoutPhraseRepository()
	s.keywordResponseRepo = repository.NewKeywordResponseRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.userAchievementRepo = repository.NewUserAchievementRepository()
}

func (s *srv) loadDomains() {
	s.cache = matcher.NewCache(s.termRepo, s.aliasRepo, s.settingRepo)
	s.leaderboard = statistic.NewLeaderboard(s.userStatRepo, s.redisClient)

	manager := achievement.NewManager(
		s.achievementRepo,
		s.userAchievementRepo,
		achievement.NewTotalMentionsEvaluator(s.userStatRepo),
		achievement.NewDistinctTermsEvaluator(s.userStatRepo),
		achievement.NewSingleTermCountEvaluator(s.userStatRepo),
		achievement.NewFirstMentionEvaluator(s.userStatRepo),
	)
	s.achievementWorker = achievement.NewWorker(manager,
		xcontext.Configs(s.ctx).Tracker.AchievementQueueSize)

	s.trackerDomain = domain.NewTrackerDomain(
		s.settingRepo, s.aliasRepo, s.termStatRepo, s.userStatRepo,
		s.messageRepo, s.cooldownRepo, s.dailyStatRepo, s.ignoredChannelRepo,
		s.cache, s.leaderboard, s.achievementWorker,
	)

	s.configDomain = domain.NewConfigDomain(
		s.communityRepo, s.termRepo, s.aliasRepo, s.settingRepo,
		s.termStatRepo, s.userStatRepo, s.messageRepo, s.cooldownRepo,
		s.dailyStatRepo, s.ignoredChannelRepo, s.cache, s.leaderboard,
	)

	s.moderationDomain = domain.NewModerationDomain(
		s.communityRepo, s.forbiddenPhraseRepo, s.timeoutPhraseRepo,
		s.keywordResponseRepo,
	)

	s.statisticDomain = domain.NewStatisticDomain(
		s.termStatRepo, s.messageRepo, s.dailyStatRepo,
		s.achievementRepo, s.userAchievementRepo, s.leaderboard,
	)

	s.reconcileDomain = domain.NewReconcileDomain(
		s.communityRepo, s.termRepo, s.aliasRepo, s.settingRepo,
		s.termStatRepo, s.userStatRepo, s.messageRepo, s.cooldownRepo,
		s.dailyStatRepo, s.ignoredChannelRepo, s.forbiddenPhraseRepo,
		s.timeoutPhraseRepo, s.keywordResponseRepo, s.userAchievementRepo,
		s.session, s.cache, s.leaderboard,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
