package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielarbabian/stash/internal/search"
	"github.com/danielarbabian/stash/internal/store"
)

var (
	searchTagsFlag          string
	searchProjectsFlag      string
	searchListTagsFlag      bool
	searchListProjectsFlag  bool
	searchCaseSensitiveFlag bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Long: `Searches notes with fuzzy text matching and token filters.

Query syntax:
  error handling      free text (fuzzy)
  #rust               require a tag
  +webapp             require a project
  -#old               exclude a tag
  -+legacy            exclude a project
  #rust +webapp text  combined`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}

		if searchListTagsFlag {
			printCounts("tags", search.TagCounts(notes))
			return nil
		}
		if searchListProjectsFlag {
			printCounts("projects", search.ProjectCounts(notes))
			return nil
		}

		rawQuery := joinArgs(args)
		if rawQuery == "" && searchTagsFlag == "" && searchProjectsFlag == "" {
			return fmt.Errorf("nothing to search for - pass a query or a filter flag")
		}

		results := search.SearchNotes(notes, rawQuery, search.Options{
			FilterTags:     searchTagsFlag,
			FilterProjects: searchProjectsFlag,
			CaseSensitive:  searchCaseSensitiveFlag,
		})

		printResults(rawQuery, results)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchTagsFlag, "tags", "", "comma-separated tag allow-list")
	searchCmd.Flags().StringVar(&searchProjectsFlag, "projects", "", "comma-separated project allow-list")
	searchCmd.Flags().BoolVar(&searchListTagsFlag, "list-tags", false, "list all tags with note counts")
	searchCmd.Flags().BoolVar(&searchListProjectsFlag, "list-projects", false, "list all projects with note counts")
	searchCmd.Flags().BoolVar(&searchCaseSensitiveFlag, "case-sensitive", false, "match text case-sensitively")
}
