// Package search is the query engine: it parses raw query strings mixing
// free text with #tag / +project requirement and exclusion tokens,
// evaluates notes against them, and produces ranked results with match
// annotations.
package search

import (
	"regexp"
	"strings"
)

// Query is the structured form of a raw query string.
type Query struct {
	Text            string
	Tags            []string
	Projects        []string
	ExcludeTags     []string
	ExcludeProjects []string
}

var (
	tagTokenPattern     = regexp.MustCompile(`-?#(\w+)`)
	projectTokenPattern = regexp.MustCompile(`-?\+(\w+)`)
)

// ParseQuery extracts #tag and +project tokens from a raw query string.
// A token prefixed with '-' is an exclusion, otherwise a requirement.
// Whatever remains after all tokens are removed, trimmed, is the
// free-text portion. Duplicate tokens are kept; evaluation treats the
// lists as sets.
func ParseQuery(raw string) Query {
	var q Query

	for _, m := range tagTokenPattern.FindAllStringSubmatch(raw, -1) {
		if strings.HasPrefix(m[0], "-") {
			q.ExcludeTags = append(q.ExcludeTags, m[1])
		} else {
			q.Tags = append(q.Tags, m[1])
		}
	}
	for _, m := range projectTokenPattern.FindAllStringSubmatch(raw, -1) {
		if strings.HasPrefix(m[0], "-") {
			q.ExcludeProjects = append(q.ExcludeProjects, m[1])
		} else {
			q.Projects = append(q.Projects, m[1])
		}
	}

	text := tagTokenPattern.ReplaceAllString(raw, "")
	text = projectTokenPattern.ReplaceAllString(text, "")
	q.Text = strings.TrimSpace(text)

	return q
}

// String reassembles the query into its canonical textual form.
func (q Query) String() string {
	parts := make([]string, 0, 1+len(q.Tags)+len(q.Projects)+len(q.ExcludeTags)+len(q.ExcludeProjects))
	for _, t := range q.Tags {
		parts = append(parts, "#"+t)
	}
	for _, p := range q.Projects {
		parts = append(parts, "+"+p)
	}
	for _, t := range q.ExcludeTags {
		parts = append(parts, "-#"+t)
	}
	for _, p := range q.ExcludeProjects {
		parts = append(parts, "-+"+p)
	}
	if q.Text != "" {
		parts = append(parts, q.Text)
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the query constrains anything at all.
func (q Query) IsEmpty() bool {
	return q.Text == "" && len(q.Tags) == 0 && len(q.Projects) == 0 &&
		len(q.ExcludeTags) == 0 && len(q.ExcludeProjects) == 0
}

// toSet lowercases a list into a membership set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

// splitCSV splits a comma-separated allow-list into trimmed,
// non-empty elements.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
