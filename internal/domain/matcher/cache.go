package matcher

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/xcontext"
)

type pattern struct {
	canonicalTerm string
	re            *regexp.Regexp
}

// termSet is the compiled matcher set of one community. It is immutable
// after construction; Rebuild swaps a finished set in with a single map
// store, so readers never observe a partially built one.
type termSet struct {
	patterns []pattern
}

type Cache struct {
	termRepo    repository.TrackedTermRepository
	aliasRepo   repository.TermAliasRepository
	settingRepo repository.SettingRepository

	sets *xsync.MapOf[int64, *termSet]
}

func NewCache(
	termRepo repository.TrackedTermRepository,
	aliasRepo repository.TermAliasRepository,
	settingRepo repository.SettingRepository,
) *Cache {
	return &Cache{
		termRepo:    termRepo,
		aliasRepo:   aliasRepo,
		settingRepo: settingRepo,
		sets:        xsync.NewIntegerMapOf[int64, *termSet](),
	}
}

// Rebuild recompiles the whole matcher set of a community from persisted
// configuration. It is called after every mutation of terms, aliases or
// matching-relevant settings; there is no incremental patching.
func (c *Cache) Rebuild(ctx context.Context, communityID int64) error {
	setting, err := c.settingRepo.Get(ctx, communityID)
	if err != nil {
		return err
	}

	terms, err := c.termRepo.GetList(ctx, communityID)
	if err != nil {
		return err
	}

	aliases, err := c.aliasRepo.GetList(ctx, communityID)
	if err != nil {
		return err
	}

	surviving := make(map[string]bool, len(terms))
	set := &termSet{}
	for _, t := range terms {
		// Length is measured in runes so multi-byte terms are not
		// overcounted.
		if utf8.RuneCountInString(t.Term) < setting.MinWordLength {
			continue
		}

		re, err := compile(t.Term, setting.CaseSensitive)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot compile term %q: %v", t.Term, err)
			continue
		}

		surviving[t.Term] = true
		set.patterns = append(set.patterns, pattern{canonicalTerm: t.Term, re: re})
	}

	// Alias surface forms match on behalf of their canonical term, but
	// only while the canonical term itself is active.
	for _, a := range aliases {
		if !surviving[a.CanonicalTerm] {
			continue
		}

		re, err := compile(a.Alias, setting.CaseSensitive)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot compile alias %q: %v", a.Alias, err)
			continue
		}

		set.patterns = append(set.patterns, pattern{canonicalTerm: a.CanonicalTerm, re: re})
	}

	c.sets.Store(communityID, set)
	return nil
}

// Forget drops a community's compiled set, used when the tenant is purged.
func (c *Cache) Forget(communityID int64) {
	c.sets.Delete(communityID)
}

func compile(term string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(term))
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	return regexp.Compile(expr)
}
