package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/model"
	"github.com/hrakoto/tailor/internal/parse"
	"github.com/hrakoto/tailor/internal/prompt"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest job titles matching the stored master CV",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

var suggestionTitleStyle = lipgloss.NewStyle().Bold(true)

func runSuggest(cmd *cobra.Command, args []string) error {
	setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	cv, err := st.LoadMasterCV()
	if err != nil {
		return fmt.Errorf("load master CV: %w", err)
	}
	if cv == "" {
		return fmt.Errorf("no master CV found: run `tailor import` first")
	}

	client, err := buildClient(cfg, st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	raw, err := complete(ctx, client, prompt.JobSuggestions(cv))
	if err != nil {
		return fmt.Errorf("job suggestions: %w", err)
	}

	suggestions := parse.JobSuggestions(raw)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions this time.")
		return nil
	}
	printSuggestions(suggestions)
	return nil
}

func printSuggestions(suggestions []model.JobSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Println("\nRoles worth targeting:")
	for _, s := range suggestions {
		line := suggestionTitleStyle.Render(s.Title)
		if s.Company != "" {
			line += pathStyle.Render(" at " + s.Company)
		}
		fmt.Printf("  %s %s\n", infoBadge, line)
	}
}
