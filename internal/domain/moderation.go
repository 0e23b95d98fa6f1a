package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/errorx"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxPhraseLength = 200

// ModerationDomain manages per-community moderation and canned-response
// configuration. The engine stores and lists it; acting on matched phrases
// (deleting a message, timing a user out, replying) is the platform
// adapter's job.
type ModerationDomain interface {
	AddForbiddenPhrase(ctx context.Context, req *model.AddForbiddenPhraseRequest) (*model.AddForbiddenPhraseResponse, error)
	RemoveForbiddenPhrase(ctx context.Context, req *model.RemoveForbiddenPhraseRequest) (*model.RemoveForbiddenPhraseResponse, error)
	GetForbiddenPhrases(ctx context.Context, req *model.GetForbiddenPhrasesRequest) (*model.GetForbiddenPhrasesResponse, error)
	AddTimeoutPhrase(ctx context.Context, req *model.AddTimeoutPhraseRequest) (*model.AddTimeoutPhraseResponse, error)
	RemoveTimeoutPhrase(ctx context.Context, req *model.RemoveTimeoutPhraseRequest) (*model.RemoveTimeoutPhraseResponse, error)
	GetTimeoutPhrases(ctx context.Context, req *model.GetTimeoutPhrasesRequest) (*model.GetTimeoutPhrasesResponse, error)
	SetKeywordResponse(ctx context.Context, req *model.SetKeywordResponseRequest) (*model.SetKeywordResponseResponse, error)
	RemoveKeywordResponse(ctx context.Context, req *model.RemoveKeywordResponseRequest) (*model.RemoveKeywordResponseResponse, error)
	GetKeywordResponses(ctx context.Context, req *model.GetKeywordResponsesRequest) (*model.GetKeywordResponsesResponse, error)
}

type moderationDomain struct {
	communityRepo       repository.CommunityRepository
	forbiddenPhraseRepo repository.ForbiddenPhraseRepository
	timeoutPhraseRepo   repository.TimeoutPhraseRepository
	keywordResponseRepo repository.KeywordResponseRepository
}

func NewModerationDomain(
	communityRepo repository.CommunityRepository,
	forbiddenPhraseRepo repository.ForbiddenPhraseRepository,
	timeoutPhraseRepo repository.TimeoutPhraseRepository,
	keywordResponseRepo repository.KeywordResponseRepository,
) *moderationDomain {
	return &moderationDomain{
		communityRepo:       communityRepo,
		forbiddenPhraseRepo: forbiddenPhraseRepo,
		timeoutPhraseRepo:   timeoutPhraseRepo,
		keywordResponseRepo: keywordResponseRepo,
	}
}

func validatePhrase(raw string) (string, error) {
	phrase := normalizeTerm(raw)
	if phrase == "" {
		return "", errorx.New(errorx.BadRequest, "Phrase must not be empty")
	}

	if len(phrase) > maxPhraseLength {
		return "", errorx.New(errorx.BadRequest,
			"Phrase must not be longer than %d characters", maxPhraseLength)
	}

	return phrase, nil
}

func (d *moderationDomain) AddForbiddenPhrase(
	ctx context.Context, req *model.AddForbiddenPhraseRequest,
) (*model.AddForbiddenPhraseResponse, error) {
	phrase, err := validatePhrase(req.Phrase)
	if err != nil {
		return nil, err
	}

	exist, err := d.forbiddenPhraseRepo.Exist(ctx, req.CommunityID, phrase)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check forbidden phrase: %v", err)
		return nil, errorx.Unknown
	}

	if exist {
		return nil, errorx.New(errorx.AlreadyExists, "Phrase %s is already forbidden", phrase)
	}

	err = d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	err = d.forbiddenPhraseRepo.Create(ctx, &entity.ForbiddenPhrase{
		CommunityID: req.CommunityID,
		Phrase:      phrase,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create forbidden phrase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddForbiddenPhraseResponse{}, nil
}

func (d *moderationDomain) RemoveForbiddenPhrase(
	ctx context.Context, req *model.RemoveForbiddenPhraseRequest,
) (*model.RemoveForbiddenPhraseResponse, error) {
	phrase := normalizeTerm(req.Phrase)

	exist, err := d.forbiddenPhraseRepo.Exist(ctx, req.CommunityID, phrase)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check forbidden phrase: %v", err)
		return nil, errorx.Unknown
	}

	if !exist {
		return nil, errorx.New(errorx.NotFound, "Phrase %s is not forbidden", phrase)
	}

	if err := d.forbiddenPhraseRepo.Delete(ctx, req.CommunityID, phrase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete forbidden phrase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveForbiddenPhraseResponse{}, nil
}

func (d *moderationDomain) GetForbiddenPhrases(
	ctx context.Context, req *model.GetForbiddenPhrasesRequest,
) (*model.GetForbiddenPhrasesResponse, error) {
	phrases, err := d.forbiddenPhraseRepo.GetList(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get forbidden phrases: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetForbiddenPhrasesResponse{Phrases: []string{}}
	for _, p := range phrases {
		resp.Phrases = append(resp.Phrases, p.Phrase)
	}

	return resp, nil
}

func (d *moderationDomain) AddTimeoutPhrase(
	ctx context.Context, req *model.AddTimeoutPhraseRequest,
) (*model.AddTimeoutPhraseResponse, error) {
	phrase, err := validatePhrase(req.Phrase)
	if err != nil {
		return nil, err
	}

	exist, err := d.timeoutPhraseRepo.Exist(ctx, req.CommunityID, phrase)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check timeout phrase: %v", err)
		return nil, errorx.Unknown
	}

	if exist {
		return nil, errorx.New(errorx.AlreadyExists, "Phrase %s already triggers a timeout", phrase)
	}

	err = d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	err = d.timeoutPhraseRepo.Create(ctx, &entity.TimeoutPhrase{
		CommunityID: req.CommunityID,
		Phrase:      phrase,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create timeout phrase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddTimeoutPhraseResponse{}, nil
}

func (d *moderationDomain) RemoveTimeoutPhrase(
	ctx context.Context, req *model.RemoveTimeoutPhraseRequest,
) (*model.RemoveTimeoutPhraseResponse, error) {
	phrase := normalizeTerm(req.Phrase)

	exist, err := d.timeoutPhraseRepo.Exist(ctx, req.CommunityID, phrase)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check timeout phrase: %v", err)
		return nil, errorx.Unknown
	}

	if !exist {
		return nil, errorx.New(errorx.NotFound, "Phrase %s does not trigger a timeout", phrase)
	}

	if err := d.timeoutPhraseRepo.Delete(ctx, req.CommunityID, phrase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete timeout phrase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveTimeoutPhraseResponse{}, nil
}

func (d *moderationDomain) GetTimeoutPhrases(
	ctx context.Context, req *model.GetTimeoutPhrasesRequest,
) (*model.GetTimeoutPhrasesResponse, error) {
	phrases, err := d.timeoutPhraseRepo.GetList(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get timeout phrases: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetTimeoutPhrasesResponse{Phrases: []string{}}
	for _, p := range phrases {
		resp.Phrases = append(resp.Phrases, p.Phrase)
	}

	return resp, nil
}

// SetKeywordResponse creates or replaces the canned response of a keyword.
func (d *moderationDomain) SetKeywordResponse(
	ctx context.Context, req *model.SetKeywordResponseRequest,
) (*model.SetKeywordResponseResponse, error) {
	keyword, err := validatePhrase(req.Keyword)
	if err != nil {
		return nil, err
	}

	response := strings.TrimSpace(req.Response)
	if response == "" {
		return nil, errorx.New(errorx.BadRequest, "Response must not be empty")
	}

	err = d.communityRepo.Upsert(ctx, &entity.Community{ID: req.CommunityID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert community %d: %v", req.CommunityID, err)
		return nil, errorx.Unknown
	}

	err = d.keywordResponseRepo.Upsert(ctx, &entity.KeywordResponse{
		CommunityID: req.CommunityID,
		Keyword:     keyword,
		Response:    response,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert keyword response: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetKeywordResponseResponse{}, nil
}

func (d *moderationDomain) RemoveKeywordResponse(
	ctx context.Context, req *model.RemoveKeywordResponseRequest,
) (*model.RemoveKeywordResponseResponse, error) {
	keyword := normalizeTerm(req.Keyword)

	_, err := d.keywordResponseRepo.Get(ctx, req.CommunityID, keyword)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Keyword %s has no response", keyword)
		}

		xcontext.Logger(ctx).Errorf("Cannot get keyword response: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.keywordResponseRepo.Delete(ctx, req.CommunityID, keyword); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete keyword response: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveKeywordResponseResponse{}, nil
}

func (d *moderationDomain) GetKeywordResponses(
	ctx context.Context, req *model.GetKeywordResponsesRequest,
) (*model.GetKeywordResponsesResponse, error) {
	responses, err := d.keywordResponseRepo.GetList(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get keyword responses: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetKeywordResponsesResponse{Responses: []model.KeywordResponse{}}
	for _, r := range responses {
		resp.Responses = append(resp.Responses, model.KeywordResponse{
			Keyword:  r.Keyword,
			Response: r.Response,
		})
	}

	return resp, nil
}
