package domain

import (
	"context"
	"strings"

	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/dateutil"
	"github.com/termwatch/backend/pkg/errorx"
	"github.com/termwatch/backend/pkg/xcontext"
)

const (
	defaultQueryLimit = 10
	maxQueryLimit     = 100
	maxSeriesDays     = 90
	snippetLength     = 120
)

type StatisticDomain interface {
	GetTopTerms(ctx context.Context, req *model.GetTopTermsRequest) (*model.GetTopTermsResponse, error)
	GetTermLeaderboard(ctx context.Context, req *model.GetTermLeaderboardRequest) (*model.GetTermLeaderboardResponse, error)
	SearchMessages(ctx context.Context, req *model.SearchMessagesRequest) (*model.SearchMessagesResponse, error)
	GetDailySeries(ctx context.Context, req *model.GetDailySeriesRequest) (*model.GetDailySeriesResponse, error)
	GetUserAchievements(ctx context.Context, req *model.GetUserAchievementsRequest) (*model.GetUserAchievementsResponse, error)
}

type statisticDomain struct {
	termStatRepo        repository.TermStatRepository
	messageRepo         repository.MessageRecordRepository
	dailyStatRepo       repository.DailyStatRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository

	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	termStatRepo repository.TermStatRepository,
	messageRepo repository.MessageRecordRepository,
	dailyStatRepo repository.DailyStatRepository,
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		termStatRepo:        termStatRepo,
		messageRepo:         messageRepo,
		dailyStatRepo:       dailyStatRepo,
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		leaderboard:         leaderboard,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}

	if limit > maxQueryLimit {
		return maxQueryLimit
	}

	return limit
}

func (d *statisticDomain) GetTopTerms(
	ctx context.Context, req *model.GetTopTermsRequest,
) (*model.GetTopTermsResponse, error) {
	stats, err := d.termStatRepo.Top(ctx, req.CommunityID, clampLimit(req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top terms: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetTopTermsResponse{Terms: []model.TermStatistic{}}
	for _, stat := range stats {
		resp.Terms = append(resp.Terms, model.TermStatistic{
			Term:            stat.Term,
			TotalCount:      stat.TotalCount,
			LastMentionedAt: stat.LastMentionedAt,
			LastUser:        stat.LastUser,
		})
	}

	return resp, nil
}

func (d *statisticDomain) GetTermLeaderboard(
	ctx context.Context, req *model.GetTermLeaderboardRequest,
) (*model.GetTermLeaderboardResponse, error) {
	term := normalizeTerm(req.Term)
	if term == "" {
		return nil, errorx.New(errorx.BadRequest, "Term must not be empty")
	}

	entries, err := d.leaderboard.GetTermLeaderboard(
		ctx, req.CommunityID, term, req.Offset, clampLimit(req.Limit))
	if err != nil {
		return nil, err
	}

	return &model.GetTermLeaderboardResponse{Entries: entries}, nil
}

func (d *statisticDomain) SearchMessages(
	ctx context.Context, req *model.SearchMessagesRequest,
) (*model.SearchMessagesResponse, error) {
	records, err := d.messageRepo.Search(ctx, repository.SearchMessageFilter{
		CommunityID: req.CommunityID,
		Query:       strings.TrimSpace(req.Query),
		Limit:       clampLimit(req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search message records: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.SearchMessagesResponse{Messages: []model.MessageSnippet{}}
	for _, record := range records {
		resp.Messages = append(resp.Messages, model.MessageSnippet{
			CommunityID: record.CommunityID,
			ChannelID:   record.ChannelID,
			UserID:      record.UserID,
			Term:        record.Term,
			Snippet:     snippet(record.Content),
			CreatedAt:   record.CreatedAt,
		})
	}

	return resp, nil
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}

	return string(runes[:snippetLength]) + "..."
}

// GetDailySeries returns one point per day for the last N days, oldest
// first. Days without mentions appear with a zero count so the series has
// no gaps.
func (d *statisticDomain) GetDailySeries(
	ctx context.Context, req *model.GetDailySeriesRequest,
) (*model.GetDailySeriesResponse, error) {
	term := normalizeTerm(req.Term)
	if term == "" {
		return nil, errorx.New(errorx.BadRequest, "Term must not be empty")
	}

	days := req.Days
	if days <= 0 {
		days = 7
	}

	if days > maxSeriesDays {
		return nil, errorx.New(errorx.BadRequest, "Series cannot cover more than %d days", maxSeriesDays)
	}

	dates := dateutil.LastDays(days)
	stats, err := d.dailyStatRepo.GetSeries(ctx, req.CommunityID, term, dates)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily stats: %v", err)
		return nil, errorx.Unknown
	}

	byDate := map[string]int64{}
	for _, stat := range stats {
		byDate[stat.Date] = stat.TotalMentions
	}

	resp := &model.GetDailySeriesResponse{Points: []model.DailyPoint{}}
	for _, date := range dates {
		resp.Points = append(resp.Points, model.DailyPoint{
			Date:          date,
			TotalMentions: byDate[date],
		})
	}

	return resp, nil
}

func (d *statisticDomain) GetUserAchievements(
	ctx context.Context, req *model.GetUserAchievementsRequest,
) (*model.GetUserAchievementsResponse, error) {
	awards, err := d.userAchievementRepo.GetList(ctx, req.CommunityID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return nil, errorx.Unknown
	}

	definitions, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement definitions: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]int{}
	for i, definition := range definitions {
		byID[definition.ID] = i
	}

	resp := &model.GetUserAchievementsResponse{Achievements: []model.EarnedAchievement{}}
	for _, award := range awards {
		i, ok := byID[award.AchievementID]
		if !ok {
			continue
		}

		resp.Achievements = append(resp.Achievements, model.EarnedAchievement{
			Name:        definitions[i].Name,
			Description: definitions[i].Description,
			EarnedAt:    award.EarnedAt,
		})
	}

	return resp, nil
}
