package model

import "time"

type GetTopTermsRequest struct {
	CommunityID int64 `json:"community_id"`
	Limit       int   `json:"limit"`
}

type TermStatistic struct {
	Term            string    `json:"term"`
	TotalCount      int64     `json:"total_count"`
	LastMentionedAt time.Time `json:"last_mentioned_at"`
	LastUser        string    `json:"last_user"`
}

type GetTopTermsResponse struct {
	Terms []TermStatistic `json:"terms"`
}

type GetTermLeaderboardRequest struct {
	CommunityID int64  `json:"community_id"`
	Term        string `json:"term"`
	Offset      int    `json:"offset"`
	Limit       int    `json:"limit"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Count       int64  `json:"count"`
	CurrentRank int    `json:"current_rank"`
}

type GetTermLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type SearchMessagesRequest struct {
	CommunityID int64  `json:"community_id"`
	Query       string `json:"query"`
	Limit       int    `json:"limit"`
}

type MessageSnippet struct {
	CommunityID int64     `json:"community_id"`
	ChannelID   int64     `json:"channel_id"`
	UserID      string    `json:"user_id"`
	Term        string    `json:"term"`
	Snippet     string    `json:"snippet"`
	CreatedAt   time.Time `json:"created_at"`
}

type SearchMessagesResponse struct {
	Messages []MessageSnippet `json:"messages"`
}

type GetDailySeriesRequest struct {
	CommunityID int64  `json:"community_id"`
	Term        string `json:"term"`
	Days        int    `json:"days"`
}

type DailyPoint struct {
	Date          string `json:"date"`
	TotalMentions int64  `json:"total_mentions"`
}

type GetDailySeriesResponse struct {
	Points []DailyPoint `json:"points"`
}

type GetUserAchievementsRequest struct {
	CommunityID int64  `json:"community_id"`
	UserID      string `json:"user_id"`
}

type EarnedAchievement struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}

type GetUserAchievementsResponse struct {
	Achievements []EarnedAchievement `json:"achievements"`
}
