package search

import (
	"sort"
	"strings"

	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/parser"
)

// Count pairs a tag or project name with its occurrence count.
type Count struct {
	Name  string
	Count int
}

// TagCounts lists all distinct tags across the notes with occurrence
// counts, sorted by count descending then name ascending.
func TagCounts(notes []*models.Note) []Count {
	counts := make(map[string]int)
	for _, note := range notes {
		for _, tag := range note.Tags {
			counts[strings.ToLower(tag)]++
		}
	}
	return sortCounts(counts)
}

// ProjectCounts lists all distinct projects analogously. Projects are
// derived from content, matching evaluation.
func ProjectCounts(notes []*models.Note) []Count {
	counts := make(map[string]int)
	for _, note := range notes {
		for _, project := range parser.Projects(note.Content) {
			counts[strings.ToLower(project)]++
		}
	}
	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for name, count := range counts {
		out = append(out, Count{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
