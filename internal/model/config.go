package model

type TrackTermRequest struct {
	CommunityID int64  `json:"community_id"`
	Term        string `json:"term"`
	CreatedBy   string `json:"created_by"`
}

type TrackTermResponse struct {
	Term string `json:"term"`
}

type UntrackTermRequest struct {
	CommunityID int64  `json:"community_id"`
	Term        string `json:"term"`
}

type UntrackTermResponse struct{}

type GetTermsRequest struct {
	CommunityID int64 `json:"community_id"`
}

type TrackedTerm struct {
	Term    string   `json:"term"`
	Aliases []string `json:"aliases,omitempty"`
}

type GetTermsResponse struct {
	Terms []TrackedTerm `json:"terms"`
}

type CreateAliasRequest struct {
	CommunityID   int64  `json:"community_id"`
	Alias         string `json:"alias"`
	CanonicalTerm string `json:"canonical_term"`
}

type CreateAliasResponse struct{}

type RemoveAliasRequest struct {
	CommunityID int64  `json:"community_id"`
	Alias       string `json:"alias"`
}

type RemoveAliasResponse struct{}

type UpdateSettingRequest struct {
	CommunityID int64  `json:"community_id"`
	Name        string `json:"name"`
	Value       string `json:"value"`
}

type UpdateSettingResponse struct{}

type IgnoreChannelRequest struct {
	CommunityID int64  `json:"community_id"`
	ChannelID   int64  `json:"channel_id"`
	CreatedBy   string `json:"created_by"`
}

type IgnoreChannelResponse struct{}

type UnignoreChannelRequest struct {
	CommunityID int64 `json:"community_id"`
	ChannelID   int64 `json:"channel_id"`
}

type UnignoreChannelResponse struct{}

type ResetStatisticsRequest struct {
	CommunityID int64 `json:"community_id"`
}

type ResetStatisticsResponse struct{}

type AddForbiddenPhraseRequest struct {
	CommunityID int64  `json:"community_id"`
	Phrase      string `json:"phrase"`
	CreatedBy   string `json:"created_by"`
}

type AddForbiddenPhraseResponse struct{}

type RemoveForbiddenPhraseRequest struct {
	CommunityID int64  `json:"community_id"`
	Phrase      string `json:"phrase"`
}

type RemoveForbiddenPhraseResponse struct{}

type GetForbiddenPhrasesRequest struct {
	CommunityID int64 `json:"community_id"`
}

type GetForbiddenPhrasesResponse struct {
	Phrases []string `json:"phrases"`
}

type AddTimeoutPhraseRequest struct {
	CommunityID int64  `json:"community_id"`
	Phrase      string `json:"phrase"`
	CreatedBy   string `json:"created_by"`
}

type AddTimeoutPhraseResponse struct{}

type RemoveTimeoutPhraseRequest struct {
	CommunityID int64  `json:"community_id"`
	Phrase      string `json:"phrase"`
}

type RemoveTimeoutPhraseResponse struct{}

type GetTimeoutPhrasesRequest struct {
	CommunityID int64 `json:"community_id"`
}

type GetTimeoutPhrasesResponse struct {
	Phrases []string `json:"phrases"`
}

type SetKeywordResponseRequest struct {
	CommunityID int64  `json:"community_id"`
	Keyword     string `json:"keyword"`
	Response    string `json:"response"`
	CreatedBy   string `json:"created_by"`
}

type SetKeywordResponseResponse struct{}

type RemoveKeywordResponseRequest struct {
	CommunityID int64  `json:"community_id"`
	Keyword     string `json:"keyword"`
}

type RemoveKeywordResponseResponse struct{}

type GetKeywordResponsesRequest struct {
	CommunityID int64 `json:"community_id"`
}

type KeywordResponse struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
}

type GetKeywordResponsesResponse struct {
	Responses []KeywordResponse `json:"responses"`
}
