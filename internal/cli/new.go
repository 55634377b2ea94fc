package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/store"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note with an interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := runInteractiveNoteForm()
		if err != nil {
			return err
		}
		if note == nil {
			// Cancelled
			return nil
		}

		fmt.Printf("✓ note saved: %s\n", note.Title)
		return nil
	},
}

// runInteractiveNoteForm runs an interactive form to create a note
func runInteractiveNoteForm() (*models.Note, error) {
	var title string
	var content string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title (optional)").
				Value(&title),
			huh.NewText().
				Title("Content (#tags, +projects and [[links]] are extracted)").
				Value(&content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("content is required")
					}
					return nil
				}),
		),
	)

	err := form.Run()
	if err != nil {
		if err == huh.ErrUserAborted {
			return nil, nil
		}
		return nil, fmt.Errorf("form failed: %w", err)
	}

	note, err := store.QuickNote(content, strings.TrimSpace(title), models.SourceEditor)
	if err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	return note, nil
}
