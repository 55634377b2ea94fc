package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danielarbabian/stash/internal/ai"
	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/logger"
	"github.com/danielarbabian/stash/internal/tui"
)

var (
	settings *config.Settings
	aiClient *ai.Client
)

// RootCmd is the root command for the CLI
var RootCmd = &cobra.Command{
	Use:   "stash",
	Short: "stash - your notes, out of your head",
	Long:  `A terminal-based note manager: capture quick thoughts as markdown, tag them inline with #tags and +projects, and find them again with fuzzy search or plain-English queries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		logger.InitializeTUI()
		defer logger.Close()

		model := tui.NewModel(settings, aiClient)
		p := tea.NewProgram(model, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	cobra.OnInitialize(initStash)

	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(newCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(aiCmd)
}

// initStash loads settings and builds the AI client before any command
// runs
func initStash() {
	var err error
	settings, err = config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	aiClient, err = ai.NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing ai client: %v\n", err)
		os.Exit(1)
	}
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
