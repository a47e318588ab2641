package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/jobpost"
	"github.com/hrakoto/tailor/internal/parse"
	"github.com/hrakoto/tailor/internal/prompt"
)

var importNoSuggest bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a master CV from a text or markdown file",
	Long: "Reads a .txt or .md file, has the model reformat it into a clean " +
		"professional CV, saves it as the master CV, and suggests job titles " +
		"that fit the profile.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importNoSuggest, "no-suggest", false, "skip job title suggestions after import")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	raw, err := jobpost.ReadDocument(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := buildClient(cfg, st)
	if err != nil {
		return err
	}
	profile, err := loadProfileOrDefault(st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("formatting CV", "file", args[0])
	formatted, err := complete(ctx, client, prompt.FormatCV(profile, raw))
	if err != nil {
		return fmt.Errorf("format CV: %w", err)
	}

	if err := st.SaveMasterCV(formatted); err != nil {
		return fmt.Errorf("save master CV: %w", err)
	}
	fmt.Printf("%s master CV imported\n", successBadge)

	if importNoSuggest {
		return nil
	}

	rawSuggestions, err := complete(ctx, client, prompt.JobSuggestions(formatted))
	if err != nil {
		logger.Warn("job suggestions failed", "error", err)
		return nil
	}
	printSuggestions(parse.JobSuggestions(rawSuggestions))
	return nil
}
