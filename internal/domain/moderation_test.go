package domain

import (
	"testing"

	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/errorx"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newModerationDomain() *moderationDomain {
	return NewModerationDomain(
		repository.NewCommunityRepository(),
		repository.NewForbiddenPhraseRepository(),
		repository.NewTimeoutPhraseRepository(),
		repository.NewKeywordResponseRepository(),
	)
}

func Test_moderationDomain_ForbiddenPhrases(t *testing.T) {
	ctx := testutil.MockContext()
	moderation := newModerationDomain()

	_, err := moderation.AddForbiddenPhrase(ctx, &model.AddForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "  Free NITRO ",
		CreatedBy:   testutil.User1,
	})
	require.NoError(t, err)

	// The community row did not exist before; adding the phrase creates it.
	ids, err := repository.NewCommunityRepository().GetAllIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{testutil.Community1}, ids)

	_, err = moderation.AddForbiddenPhrase(ctx, &model.AddForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "free nitro",
	})
	requireErrorxCode(t, err, errorx.AlreadyExists)

	_, err = moderation.AddForbiddenPhrase(ctx, &model.AddForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "   ",
	})
	requireErrorxCode(t, err, errorx.BadRequest)

	_, err = moderation.AddForbiddenPhrase(ctx, &model.AddForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "click here",
	})
	require.NoError(t, err)

	resp, err := moderation.GetForbiddenPhrases(ctx, &model.GetForbiddenPhrasesRequest{
		CommunityID: testutil.Community1,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"click here", "free nitro"}, resp.Phrases)

	// Another community sees nothing.
	resp, err = moderation.GetForbiddenPhrases(ctx, &model.GetForbiddenPhrasesRequest{
		CommunityID: testutil.Community2,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Phrases)

	_, err = moderation.RemoveForbiddenPhrase(ctx, &model.RemoveForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "Free Nitro",
	})
	require.NoError(t, err)

	_, err = moderation.RemoveForbiddenPhrase(ctx, &model.RemoveForbiddenPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "free nitro",
	})
	requireErrorxCode(t, err, errorx.NotFound)
}

func Test_moderationDomain_TimeoutPhrases(t *testing.T) {
	ctx := testutil.MockContext()
	moderation := newModerationDomain()

	_, err := moderation.AddTimeoutPhrase(ctx, &model.AddTimeoutPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "Slur Word",
		CreatedBy:   testutil.User1,
	})
	require.NoError(t, err)

	_, err = moderation.AddTimeoutPhrase(ctx, &model.AddTimeoutPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "slur word",
	})
	requireErrorxCode(t, err, errorx.AlreadyExists)

	resp, err := moderation.GetTimeoutPhrases(ctx, &model.GetTimeoutPhrasesRequest{
		CommunityID: testutil.Community1,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"slur word"}, resp.Phrases)

	_, err = moderation.RemoveTimeoutPhrase(ctx, &model.RemoveTimeoutPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "slur word",
	})
	require.NoError(t, err)

	_, err = moderation.RemoveTimeoutPhrase(ctx, &model.RemoveTimeoutPhraseRequest{
		CommunityID: testutil.Community1,
		Phrase:      "slur word",
	})
	requireErrorxCode(t, err, errorx.NotFound)
}

func Test_moderationDomain_KeywordResponses(t *testing.T) {
	ctx := testutil.MockContext()
	moderation := newModerationDomain()

	_, err := moderation.SetKeywordResponse(ctx, &model.SetKeywordResponseRequest{
		CommunityID: testutil.Community1,
		Keyword:     "Help",
		Response:    "See the pinned message.",
		CreatedBy:   testutil.User1,
	})
	require.NoError(t, err)

	_, err = moderation.SetKeywordResponse(ctx, &model.SetKeywordResponseRequest{
		CommunityID: testutil.Community1,
		Keyword:     "help",
		Response:    "",
	})
	requireErrorxCode(t, err, errorx.BadRequest)

	// Setting the same keyword again replaces the response.
	_, err = moderation.SetKeywordResponse(ctx, &model.SetKeywordResponseRequest{
		CommunityID: testutil.Community1,
		Keyword:     "help",
		Response:    "Ask in #support.",
	})
	require.NoError(t, err)

	resp, err := moderation.GetKeywordResponses(ctx, &model.GetKeywordResponsesRequest{
		CommunityID: testutil.Community1,
	})
	require.NoError(t, err)
	require.Equal(t, []model.KeywordResponse{
		{Keyword: "help", Response: "Ask in #support."},
	}, resp.Responses)

	_, err = moderation.RemoveKeywordResponse(ctx, &model.RemoveKeywordResponseRequest{
		CommunityID: testutil.Community1,
		Keyword:     "help",
	})
	require.NoError(t, err)

	_, err = moderation.RemoveKeywordResponse(ctx, &model.RemoveKeywordResponseRequest{
		CommunityID: testutil.Community1,
		Keyword:     "help",
	})
	requireErrorxCode(t, err, errorx.NotFound)
}
