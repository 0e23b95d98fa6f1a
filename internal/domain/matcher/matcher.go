package matcher

type Match struct {
	CanonicalTerm string
	Occurrences   int64
}

// Match scans text against the community's active set and returns
// non-overlapping word-boundary occurrence counts grouped by canonical
// term, in set order. A community without a built set matches nothing.
func (c *Cache) Match(communityID int64, text string) []Match {
	if text == "" {
		return nil
	}

	set, ok := c.sets.Load(communityID)
	if !ok || len(set.patterns) == 0 {
		return nil
	}

	var matches []Match
	index := make(map[string]int)
	for _, p := range set.patterns {
		n := len(p.re.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}

		if i, ok := index[p.canonicalTerm]; ok {
			matches[i].Occurrences += int64(n)
			continue
		}

		index[p.canonicalTerm] = len(matches)
		matches = append(matches, Match{CanonicalTerm: p.canonicalTerm, Occurrences: int64(n)})
	}

	return matches
}
