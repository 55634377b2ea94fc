package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/danielarbabian/stash/internal/parser"
	"github.com/rs/xid"
	"gopkg.in/yaml.v3"
)

// Notes Directory Structure
// Each note is a single markdown file stored flat under the notes
// directory, named by its ID:
//
//	~/.stash/notes/
//	├── <id>.md
//	└── ...
//
// The file starts with a YAML frontmatter block holding all metadata;
// everything after the closing delimiter is the note content. Tags and
// projects are persisted in the frontmatter but are derived from the
// content (#tag and +project tokens), so whoever mutates content must
// re-derive them before saving.

var (
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	ErrInvalidFrontmatter = errors.New("frontmatter not closed")
)

// NoteSource records how a note was created.
type NoteSource string

const (
	SourceQuickCapture NoteSource = "quick-capture"
	SourceEditor       NoteSource = "editor"
	SourceUI           NoteSource = "ui"
)

// TagDeleted marks soft-deleted notes. Notes carrying it are excluded
// from every filtered view but stay on disk.
const TagDeleted = "deleted"

// Note is a single user document with metadata and markdown content.
type Note struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title,omitempty"`
	Tags     []string   `yaml:"tags"`
	Projects []string   `yaml:"projects"`
	LinksTo  []string   `yaml:"links_to"`
	Created  time.Time  `yaml:"created"`
	Updated  *time.Time `yaml:"updated,omitempty"`
	Source   NoteSource `yaml:"source"`
	Content  string     `yaml:"-"`
}

// NewNote creates a note from raw content, deriving tags, projects and
// links from the text. An empty title falls back to the start of the
// content.
func NewNote(content, title string, source NoteSource) *Note {
	if title == "" {
		title = DeriveTitle(content)
	}
	return &Note{
		ID:       xid.New().String(),
		Title:    title,
		Tags:     parser.Tags(content),
		Projects: parser.Projects(content),
		LinksTo:  parser.Links(content),
		Created:  time.Now().UTC(),
		Source:   source,
		Content:  content,
	}
}

// DeriveTitle builds a fallback title from the first non-empty content
// line, without markdown heading markers, capped at 50 characters.
func DeriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if len(line) > 50 {
			line = strings.TrimSpace(line[:47]) + "..."
		}
		return line
	}
	return "Untitled Note"
}

// SyncMetadata re-derives tags, projects and links from the current
// content. Call after any content mutation, before saving.
func (n *Note) SyncMetadata() {
	n.Tags = parser.Tags(n.Content)
	n.Projects = parser.Projects(n.Content)
	n.LinksTo = parser.Links(n.Content)
}

// HasTag reports whether the note carries the given tag (exact match).
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Touch stamps the updated time.
func (n *Note) Touch() {
	now := time.Now().UTC()
	n.Updated = &now
}

// Markdown serializes the note to its on-disk form: a YAML frontmatter
// block followed by the raw content.
func (n *Note) Markdown() (string, error) {
	fm, err := yaml.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	return fmt.Sprintf("---\n%s---\n%s", fm, n.Content), nil
}

// ParseNote parses the on-disk markdown form back into a Note.
func ParseNote(raw string) (*Note, error) {
	fmBlock, content, err := splitFrontmatter(raw)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := yaml.Unmarshal([]byte(fmBlock), &note); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if note.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidFrontmatter)
	}

	note.Content = content
	return &note, nil
}

// LoadNote reads and parses a note file.
func LoadNote(path string) (*Note, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note file: %w", err)
	}
	return ParseNote(string(raw))
}

// splitFrontmatter separates the leading YAML block from the content.
// The file must begin with "---\n"; the block ends at the next line
// consisting of "---".
func splitFrontmatter(raw string) (frontmatter, content string, err error) {
	if !strings.HasPrefix(raw, "---\n") {
		return "", "", ErrMissingFrontmatter
	}

	rest := raw[4:]
	end := strings.Index(rest, "\n---\n")
	if end == -1 {
		// A file can legally end right at the closing delimiter.
		if strings.HasSuffix(rest, "\n---") {
			return rest[:len(rest)-4], "", nil
		}
		return "", "", ErrInvalidFrontmatter
	}

	return rest[:end], rest[end+5:], nil
}
