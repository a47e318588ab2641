package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/historyui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past tailoring runs",
	RunE:  runHistoryList,
}

var historyBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse past runs interactively (TUI)",
	RunE:  runHistoryBrowse,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyBrowseCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var (
	historyCompanyStyle = lipgloss.NewStyle().Bold(true)
	historyMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No applications yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s %s\n", historyCompanyStyle.Render(e.Company),
			historyMetaStyle.Render(fmt.Sprintf("%s • %s • %s", e.Position, e.Date, e.Status)))
	}
	return nil
}

func runHistoryBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	return historyui.Browse(entries)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}
