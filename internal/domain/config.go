package domain

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/termwatch/backend/internal/domain/matcher"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/errorx"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxTermLength = 100

var themeColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type ConfigDomain interface {
	TrackTerm(ctx context.Context, req *model.TrackTermRequest) (*model.TrackTermResponse, error)
	UntrackTerm(ctx context.Context, req *model.UntrackTermRequest) (*model.UntrackTermResponse, error)
	GetTerms(ctx context.Context, req *model.GetTermsRequest) (*model.GetTermsResponse, error)
	CreateAlias(ctx context.Context, req *model.CreateAliasRequest) (*model.CreateAliasResponse, error)
	RemoveAlias(ctx context.Context, req *model.RemoveAliasRequest) (*model.RemoveAliasResponse, error)
	UpdateSetting(ctx context.Context, req *model.UpdateSettingRequest) (*model.UpdateSettingResponse, error)
	IgnoreChannel(ctx context.Context, req *model.IgnoreChannelRequest) (*model.IgnoreChannelResponse, error)
	UnignoreChannel(ctx context.Context, req *model.UnignoreChannelRequest) (*model.UnignoreChannelResponse, error)
	ResetStatistics(ctx context.Context, req *model.ResetStatisticsRequest) (*model.ResetStatisticsResponse, error)
}

type configDomain struct {
	communityRepo      repository.CommunityRepository
	termRepo           repository.TrackedTermRepository
	aliasRepo          repository.TermAliasRepository
	settingRepo        repository.SettingRepository
	termStatRepo       repository.TermStatRepository
	userStatRepo       repository.UserTermStatRepository
	messageRepo        repository.MessageRecordRepository
	cooldownRepo       repository.CooldownMarkRepository
	dailyStatRepo      repository.DailyStatRepository
	ignoredChannelRepo repository.IgnoredChannelRepository

	cache       *matcher.Cache
	leaderboard statistic.Leaderboard
}

func NewConfigDomain(
	communityRepo repository.CommunityRepository,
	termRepo repository.TrackedTermRepository,
	aliasRepo repository.TermAliasRepository,
	settingRepo repository.SettingRepository,
	termStatRepo repository.TermStatRepository,
	userStatRepo repository.UserTermStatRepository,
	messageRepo repository.MessageRecordRepository,
	cooldownRepo repository.CooldownMarkRepository,
	dailyStatRepo repository.DailyStatRepository,
	ignoredChannelRepo repository.IgnoredChannelRepository,
	cache *matcher.Cache,
	leaderboard statistic.Leaderboard,
) *configDomain {
	return &configDomain{
		communityRepo:      communityRepo,
		termRepo:           termRepo,
		aliasRepo:          aliasRepo,
		settingRepo:        settingRepo,
		termStatRepo:       termStatRepo,
		userStatRepo:       userStatRepo,
		messageRepo:        messageRepo,
		cooldownRepo:       cooldownRepo,
		dailyStatRepo:      dailyStatRepo,
		ignoredChannelRepo: ignoredChannelRepo,
		cache:              cache,
		leaderboard:        leaderboard,
	}
}

// normalizeTerm is the single place terms and aliases take their stored
// form. Matching re-applies case rules at compile time; storage is always
// lowercase.
func normalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (d *configDomain) TrackTerm(
	ctx context.Context, req *model.TrackTermRequest,
) (*model.TrackTermResponse, error) {
	term := normalizeTerm(req.Term)
	if term == "" {
		return nil, errorx.New(errorx.BadRequest, "Term must not be empty")
	}

	if len(term) > maxTermLength {
		return nil, errorx.New(errorx.BadRequest,
			"Term must not be longer than %d characters", maxTermLength)
	}

	_, err := d.termRepo.Get(ctx, req.CommunityID, term)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Term %s is already tracked", term)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing term: %v", err)
		return nil, errorx.Unknown
	}

	// A community row must exist before anything references it.
	err = d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	err = d.termRepo.Create(ctx, &entity.TrackedTerm{
		CommunityID: req.CommunityID,
		Term:        term,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create tracked term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cache.Rebuild(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild pattern cache of community %d: %v",
			req.CommunityID, err)
		return nil, errorx.Unknown
	}

	return &model.TrackTermResponse{Term: term}, nil
}

// UntrackTerm removes the term and everything recorded under it. All row
// deletions share one transaction so an untracked term cannot keep ghost
// counters behind.
func (d *configDomain) UntrackTerm(
	ctx context.Context, req *model.UntrackTermRequest,
) (*model.UntrackTermResponse, error) {
	term := normalizeTerm(req.Term)

	_, err := d.termRepo.Get(ctx, req.CommunityID, term)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Term %s is not tracked", term)
		}

		xcontext.Logger(ctx).Errorf("Cannot get tracked term: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.termRepo.Delete(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete tracked term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.aliasRepo.DeleteByCanonicalTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete aliases of term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.termStatRepo.DeleteByTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete term aggregate: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userStatRepo.DeleteByTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user stats of term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.messageRepo.DeleteByTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete message records of term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cooldownRepo.DeleteByTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete cooldown marks of term: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dailyStatRepo.DeleteByTerm(ctx, req.CommunityID, term); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete daily stats of term: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.leaderboard.Invalidate(ctx, req.CommunityID, term)

	if err := d.cache.Rebuild(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild pattern cache of community %d: %v",
			req.CommunityID, err)
		return nil, errorx.Unknown
	}

	return &model.UntrackTermResponse{}, nil
}

func (d *configDomain) GetTerms(
	ctx context.Context, req *model.GetTermsRequest,
) (*model.GetTermsResponse, error) {
	terms, err := d.termRepo.GetList(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tracked terms: %v", err)
		return nil, errorx.Unknown
	}

	aliases, err := d.aliasRepo.GetList(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get term aliases: %v", err)
		return nil, errorx.Unknown
	}

	aliasesByTerm := map[string][]string{}
	for _, alias := range aliases {
		aliasesByTerm[alias.CanonicalTerm] = append(aliasesByTerm[alias.CanonicalTerm], alias.Alias)
	}

	resp := &model.GetTermsResponse{Terms: []model.TrackedTerm{}}
	for _, term := range terms {
		resp.Terms = append(resp.Terms, model.TrackedTerm{
			Term:    term.Term,
			Aliases: aliasesByTerm[term.Term],
		})
	}

	return resp, nil
}

func (d *configDomain) CreateAlias(
	ctx context.Context, req *model.CreateAliasRequest,
) (*model.CreateAliasResponse, error) {
	alias := normalizeTerm(req.Alias)
	canonical := normalizeTerm(req.CanonicalTerm)
	if alias == "" || canonical == "" {
		return nil, errorx.New(errorx.BadRequest, "Alias and canonical term must not be empty")
	}

	if len(alias) > maxTermLength {
		return nil, errorx.New(errorx.BadRequest,
			"Alias must not be longer than %d characters", maxTermLength)
	}

	_, err := d.termRepo.Get(ctx, req.CommunityID, canonical)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Term %s is not tracked", canonical)
		}

		xcontext.Logger(ctx).Errorf("Cannot get canonical term: %v", err)
		return nil, errorx.Unknown
	}

	// An alias spelled like another tracked term would silently redirect
	// that term's mentions.
	if alias != canonical {
		_, err = d.termRepo.Get(ctx, req.CommunityID, alias)
		if err == nil {
			return nil, errorx.New(errorx.AlreadyExists,
				"%s is already tracked as its own term", alias)
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot check alias against tracked terms: %v", err)
			return nil, errorx.Unknown
		}
	}

	_, err = d.aliasRepo.Get(ctx, req.CommunityID, alias)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Alias %s already exists", alias)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing alias: %v", err)
		return nil, errorx.Unknown
	}

	err = d.aliasRepo.Create(ctx, &entity.TermAlias{
		CommunityID:   req.CommunityID,
		Alias:         alias,
		CanonicalTerm: canonical,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create alias: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cache.Rebuild(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild pattern cache of community %d: %v",
			req.CommunityID, err)
		return nil, errorx.Unknown
	}

	return &model.CreateAliasResponse{}, nil
}

func (d *configDomain) RemoveAlias(
	ctx context.Context, req *model.RemoveAliasRequest,
) (*model.RemoveAliasResponse, error) {
	alias := normalizeTerm(req.Alias)

	_, err := d.aliasRepo.Get(ctx, req.CommunityID, alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Alias %s does not exist", alias)
		}

		xcontext.Logger(ctx).Errorf("Cannot get alias: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.aliasRepo.Delete(ctx, req.CommunityID, alias); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete alias: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cache.Rebuild(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rebuild pattern cache of community %d: %v",
			req.CommunityID, err)
		return nil, errorx.Unknown
	}

	return &model.RemoveAliasResponse{}, nil
}

// UpdateSetting changes one named setting. The value arrives as a string
// from the command surface and is parsed per setting. The pattern cache is
// rebuilt only when the setting influences matching.
func (d *configDomain) UpdateSetting(
	ctx context.Context, req *model.UpdateSettingRequest,
) (*model.UpdateSettingResponse, error) {
	setting, err := d.settingRepo.Get(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get settings of community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	rebuildCache := false
	name := strings.ToLower(strings.TrimSpace(req.Name))
	value := strings.TrimSpace(req.Value)

	switch name {
	case "ignore_commands":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must be true or false", name)
		}
		setting.IgnoreCommands = b

	case "case_sensitive":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must be true or false", name)
		}
		setting.CaseSensitive = b
		rebuildCache = true

	case "min_word_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must be a positive integer", name)
		}
		setting.MinWordLength = n
		rebuildCache = true

	case "cooldown_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, errorx.New(errorx.BadRequest,
				"Value of %s must be a non-negative integer", name)
		}
		setting.CooldownSeconds = n

	case "auto_cleanup_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, errorx.New(errorx.BadRequest,
				"Value of %s must be a non-negative integer", name)
		}
		setting.AutoCleanupDays = n

	case "notification_channel":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id < 0 {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must be a channel id", name)
		}
		setting.NotificationChannelID = id

	case "daily_summary":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must be true or false", name)
		}
		setting.DailySummary = b

	case "theme_color":
		if !themeColorRegex.MatchString(value) {
			return nil, errorx.New(errorx.BadRequest, "Value of %s must look like #rrggbb", name)
		}
		setting.ThemeColor = strings.ToLower(value)

	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown setting %s", name)
	}

	err = d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	if err := d.settingRepo.Upsert(ctx, setting); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert settings: %v", err)
		return nil, errorx.Unknown
	}

	if rebuildCache {
		if err := d.cache.Rebuild(ctx, req.CommunityID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot rebuild pattern cache of community %d: %v",
				req.CommunityID, err)
			return nil, errorx.Unknown
		}
	}

	return &model.UpdateSettingResponse{}, nil
}

func (d *configDomain) IgnoreChannel(
	ctx context.Context, req *model.IgnoreChannelRequest,
) (*model.IgnoreChannelResponse, error) {
	err := d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	err = d.ignoredChannelRepo.Create(ctx, &entity.IgnoredChannel{
		CommunityID: req.CommunityID,
		ChannelID:   req.ChannelID,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ignore channel: %v", err)
		return nil, errorx.Unknown
	}

	return &model.IgnoreChannelResponse{}, nil
}

func (d *configDomain) UnignoreChannel(
	ctx context.Context, req *model.UnignoreChannelRequest,
) (*model.UnignoreChannelResponse, error) {
	exist, err := d.ignoredChannelRepo.Exist(ctx, req.CommunityID, req.ChannelID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check ignored channel: %v", err)
		return nil, errorx.Unknown
	}

	if !exist {
		return nil, errorx.New(errorx.NotFound, "Channel %d is not ignored", req.ChannelID)
	}

	if err := d.ignoredChannelRepo.Delete(ctx, req.CommunityID, req.ChannelID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unignore channel: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnignoreChannelResponse{}, nil
}

// ResetStatistics zeroes every counter of a community while keeping its
// configuration (terms, aliases, settings, ignored channels).
func (d *configDomain) ResetStatistics(
	ctx context.Context, req *model.ResetStatisticsRequest,
) (*model.ResetStatisticsResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.termStatRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset term aggregates: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userStatRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset user stats: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.messageRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset message records: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cooldownRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset cooldown marks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dailyStatRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset daily stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.leaderboard.InvalidateCommunity(ctx, req.CommunityID)

	return &model.ResetStatisticsResponse{}, nil
}
