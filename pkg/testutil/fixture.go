package testutil

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
)

const (
	Community1 int64 = 1001
	Community2 int64 = 1002

	User1 = "user1"
	User2 = "user2"
)

// CreateFixtureDb seeds two communities, a few tracked terms and an alias
// on top of MockContext.
func CreateFixtureDb(ctx context.Context) {
	insertCommunities(ctx)
	insertTerms(ctx)
}

func insertCommunities(ctx context.Context) {
	communityRepo := repository.NewCommunityRepository()

	err := communityRepo.Upsert(ctx, &entity.Community{
		ID:          Community1,
		DisplayName: "community 1",
	})
	if err != nil {
		panic(err)
	}

	err = communityRepo.Upsert(ctx, &entity.Community{
		ID:          Community2,
		DisplayName: "community 2",
	})
	if err != nil {
		panic(err)
	}
}

func insertTerms(ctx context.Context) {
	termRepo := repository.NewTrackedTermRepository()
	aliasRepo := repository.NewTermAliasRepository()

	for _, term := range []string{"gopher", "ferris"} {
		err := termRepo.Create(ctx, &entity.TrackedTerm{
			CommunityID: Community1,
			Term:        term,
			CreatedBy:   User1,
		})
		if err != nil {
			panic(err)
		}
	}

	err := aliasRepo.Create(ctx, &entity.TermAlias{
		CommunityID:   Community1,
		Alias:         "gophers",
		CanonicalTerm: "gopher",
	})
	if err != nil {
		panic(err)
	}

	err = termRepo.Create(ctx, &entity.TrackedTerm{
		CommunityID: Community2,
		Term:        "crab",
		CreatedBy:   User2,
	})
	if err != nil {
		panic(err)
	}
}
