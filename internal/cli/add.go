package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/store"
)

var addTitleFlag string

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Quickly capture a note",
	Long: `Saves a note straight from the command line.
Tags (#tag), projects (+project) and links ([[note]]) are extracted
from the content automatically.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.TrimSpace(strings.Join(args, " "))
		if content == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		note, err := store.QuickNote(content, addTitleFlag, models.SourceQuickCapture)
		if err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Printf("✓ note saved: %s\n", note.Title)
		if len(note.Tags) > 0 {
			fmt.Printf("  tags: %s\n", strings.Join(note.Tags, ", "))
		}
		if len(note.Projects) > 0 {
			fmt.Printf("  projects: %s\n", strings.Join(note.Projects, ", "))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitleFlag, "title", "t", "", "note title (defaults to the first content words)")
}
