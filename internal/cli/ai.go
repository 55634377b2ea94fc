package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/danielarbabian/stash/internal/search"
	"github.com/danielarbabian/stash/internal/store"
)

var aiCmd = &cobra.Command{
	Use:   "ai [question]",
	Short: "Search notes with a plain-English question",
	Long: `Translates a natural-language question into stash search syntax,
shows the generated query, and runs it after confirmation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !aiClient.IsConfigured() {
			return fmt.Errorf("ai is not configured - set your openai api key in settings")
		}

		input := strings.Join(args, " ")
		fmt.Println("translating...")

		query, err := aiClient.TranslateQuery(context.Background(), input)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		fmt.Printf("\ngenerated query: stash search %s\n\n", query)

		// The translated query is untrusted; it only runs with explicit
		// confirmation and only through the query engine.
		var run bool
		confirm := huh.NewConfirm().
			Title("Run this search?").
			Affirmative("Run").
			Negative("Cancel").
			Value(&run)
		if err := confirm.Run(); err != nil {
			if err == huh.ErrUserAborted {
				return nil
			}
			return err
		}
		if !run {
			fmt.Println("cancelled")
			return nil
		}

		notes, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}

		results := search.SearchNotes(notes, query, search.Options{})
		printResults(query, results)
		return nil
	},
}
