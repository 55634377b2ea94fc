package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/search"
)

var (
	resultTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	resultMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	resultMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	resultSnippetStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	countNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// joinArgs rebuilds the raw query string from cobra args
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// printResults writes ranked search results to stdout
func printResults(rawQuery string, results []search.Result) {
	if len(results) == 0 {
		fmt.Println("no notes found")
		return
	}

	if rawQuery != "" {
		fmt.Printf("found %d note(s) for %q\n\n", len(results), rawQuery)
	} else {
		fmt.Printf("found %d note(s)\n\n", len(results))
	}

	for _, r := range results {
		title := r.Note.Title
		if title == "" {
			title = "(untitled)"
		}

		header := resultTitleStyle.Render(title)
		if r.TitleMatch {
			header += resultMatchStyle.Render("  [title match]")
		}
		header += resultMetaStyle.Render(fmt.Sprintf("  score %d", r.Score))
		fmt.Println(header)

		meta := []string{r.Note.Created.Format("2006-01-02")}
		if len(r.TagMatches) > 0 {
			meta = append(meta, "tags: "+strings.Join(r.TagMatches, ", "))
		}
		if len(r.ProjectMatches) > 0 {
			meta = append(meta, "projects: "+strings.Join(r.ProjectMatches, ", "))
		}
		if r.Path != "" {
			meta = append(meta, r.Path)
		}
		fmt.Println(resultMetaStyle.Render("  " + strings.Join(meta, "  ")))

		for _, snippet := range r.Snippets {
			fmt.Println(resultSnippetStyle.Render("  " + snippet))
		}
		fmt.Println()
	}
}

// printCounts writes a tag or project count listing to stdout
func printCounts(kind string, counts []search.Count) {
	if len(counts) == 0 {
		fmt.Printf("no %s found\n", kind)
		return
	}

	fmt.Printf("%s in use:\n", kind)
	for _, c := range counts {
		fmt.Printf("  %s %s\n",
			countNameStyle.Render(c.Name),
			resultMetaStyle.Render(fmt.Sprintf("(%d)", c.Count)),
		)
	}
}
