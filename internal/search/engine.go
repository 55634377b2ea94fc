package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/parser"
	"github.com/danielarbabian/stash/internal/store"
	"github.com/sahilm/fuzzy"
)

// BaselineScore is assigned when a query has no free-text portion, so
// presence-only tag/project queries still produce ranked results.
const BaselineScore = 100

// maxSnippets caps how many matching content lines a result carries.
const maxSnippets = 3

// Options tunes evaluation beyond the parsed query itself.
type Options struct {
	// FilterTags / FilterProjects are comma-separated allow-lists from
	// explicit CLI flags. When present, a note must share at least one
	// entry to be considered at all.
	FilterTags     string
	FilterProjects string
	CaseSensitive  bool
}

// Result is one ranked search hit.
type Result struct {
	Note           *models.Note
	Score          int
	TitleMatch     bool
	Snippets       []string
	TagMatches     []string
	ProjectMatches []string
	Path           string
}

// matchCount is the primary ranking key.
func (r Result) matchCount() int {
	return len(r.TagMatches) + len(r.ProjectMatches)
}

// Evaluate scores a single note against a parsed query. It returns nil
// when the note is rejected.
func Evaluate(note *models.Note, q Query, opts Options) *Result {
	noteTags := toSet(note.Tags)
	noteProjects := toSet(parser.Projects(note.Content))

	if allow := splitCSV(opts.FilterTags); len(allow) > 0 && !intersects(noteTags, allow) {
		return nil
	}
	if allow := splitCSV(opts.FilterProjects); len(allow) > 0 && !intersects(noteProjects, allow) {
		return nil
	}

	for _, tag := range q.Tags {
		if !noteTags[strings.ToLower(tag)] {
			return nil
		}
	}
	for _, project := range q.Projects {
		if !noteProjects[strings.ToLower(project)] {
			return nil
		}
	}

	for _, tag := range q.ExcludeTags {
		if noteTags[strings.ToLower(tag)] {
			return nil
		}
	}
	for _, project := range q.ExcludeProjects {
		if noteProjects[strings.ToLower(project)] {
			return nil
		}
	}

	result := &Result{Note: note}

	if q.Text != "" {
		if score, ok := fuzzyScore(q.Text, note.Title, opts.CaseSensitive); ok {
			result.Score = score
			result.TitleMatch = true
		}
		for i, line := range strings.Split(note.Content, "\n") {
			score, ok := fuzzyScore(q.Text, line, opts.CaseSensitive)
			if !ok {
				continue
			}
			if score > result.Score {
				result.Score = score
			}
			if len(result.Snippets) < maxSnippets {
				result.Snippets = append(result.Snippets, fmt.Sprintf("Line %d: %s", i+1, strings.TrimSpace(line)))
			}
		}
	} else {
		result.Score = BaselineScore
	}

	result.TagMatches = recordMatches(q.Tags, noteTags)
	result.ProjectMatches = recordMatches(q.Projects, noteProjects)

	if result.Score <= 0 && result.matchCount() == 0 {
		return nil
	}
	return result
}

// SearchNotes evaluates every note against a raw query and returns the
// ranked results. Soft-deleted notes never match.
func SearchNotes(notes []*models.Note, rawQuery string, opts Options) []Result {
	q := ParseQuery(rawQuery)

	results := make([]Result, 0)
	for _, note := range notes {
		if note.HasTag(models.TagDeleted) {
			continue
		}
		r := Evaluate(note, q, opts)
		if r == nil {
			continue
		}
		if path, err := store.NotePath(note.ID); err == nil {
			r.Path = path
		}
		results = append(results, *r)
	}

	Rank(results)
	return results
}

// Rank sorts results by tag+project match count, then score, both
// descending. Ties keep discovery order; directory iteration order is
// the only further guarantee.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].matchCount() != results[j].matchCount() {
			return results[i].matchCount() > results[j].matchCount()
		}
		return results[i].Score > results[j].Score
	})
}

// fuzzyScore matches pattern against target, returning the relevance
// score and whether a match was found. Matched targets always score at
// least 1 so they survive the keep threshold.
func fuzzyScore(pattern, target string, caseSensitive bool) (int, bool) {
	if pattern == "" || target == "" {
		return 0, false
	}

	matches := fuzzy.Find(pattern, []string{target})
	if len(matches) == 0 {
		return 0, false
	}

	m := matches[0]
	if caseSensitive && !exactCaseMatch(pattern, target, m.MatchedIndexes) {
		return 0, false
	}

	score := m.Score
	if score < 1 {
		score = 1
	}
	return score, true
}

// exactCaseMatch re-checks a case-folded fuzzy match byte by byte.
func exactCaseMatch(pattern, target string, matchedIndexes []int) bool {
	k := 0
	for _, idx := range matchedIndexes {
		// Skip pattern bytes the matcher does not align (spaces).
		for k < len(pattern) && pattern[k] == ' ' && target[idx] != ' ' {
			k++
		}
		if k >= len(pattern) || target[idx] != pattern[k] {
			return false
		}
		k++
	}
	return true
}

// recordMatches returns the required tokens actually present in the
// note's set, deduplicated, for display.
func recordMatches(required []string, present map[string]bool) []string {
	var found []string
	seen := make(map[string]bool, len(required))
	for _, token := range required {
		key := strings.ToLower(token)
		if present[key] && !seen[key] {
			seen[key] = true
			found = append(found, key)
		}
	}
	return found
}

func intersects(set map[string]bool, items []string) bool {
	for _, item := range items {
		if set[strings.ToLower(item)] {
			return true
		}
	}
	return false
}
