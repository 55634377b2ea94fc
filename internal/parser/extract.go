// Package parser holds the pure text-scanning functions shared by the
// note repository and the query engine. Centralizing them keeps the
// persisted metadata and the search-time derivation in lockstep.
package parser

import (
	"regexp"
	"strings"
)

// tagPattern matches #tag tokens: a hash followed by a word run.
var tagPattern = regexp.MustCompile(`#(\w+)`)

// projectPattern matches +project tokens.
var projectPattern = regexp.MustCompile(`\+(\w+)`)

// wikiLinkPattern matches [[target]] wiki-style links.
var wikiLinkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Tags extracts the #tag tokens from content, without the marker, in
// first-appearance order. Duplicates are dropped.
func Tags(content string) []string {
	return captures(tagPattern, content)
}

// Projects extracts all +project tokens from content.
func Projects(content string) []string {
	return captures(projectPattern, content)
}

// Links extracts all [[target]] link targets from content, trimmed.
func Links(content string) []string {
	matches := wikiLinkPattern.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		target := strings.TrimSpace(m[1])
		if target != "" {
			links = append(links, target)
		}
	}
	return links
}

// ContainsFold reports whether any element of list contains substr,
// ignoring case. Used by the session filters.
func ContainsFold(list []string, substr string) bool {
	needle := strings.ToLower(substr)
	for _, item := range list {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}

func captures(pattern *regexp.Regexp, content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	return out
}
