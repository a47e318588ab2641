package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/prompt"
)

var enhanceFormatOnly bool

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite the stored master CV with stronger wording",
	Long: "Sends the stored master CV back to the model to improve wording and " +
		"impact, then saves the result as the new master CV. With --format-only " +
		"the content is left alone and only the structure is cleaned up.",
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().BoolVar(&enhanceFormatOnly, "format-only", false, "reformat without changing the content")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
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
	profile, err := loadProfileOrDefault(st)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sp := prompt.EnhanceCV(profile, cv)
	if enhanceFormatOnly {
		sp = prompt.FormatCV(profile, cv)
	}

	improved, err := complete(ctx, client, sp)
	if err != nil {
		return fmt.Errorf("enhance CV: %w", err)
	}

	if err := st.SaveMasterCV(improved); err != nil {
		return fmt.Errorf("save master CV: %w", err)
	}
	fmt.Printf("%s master CV updated\n", successBadge)
	return nil
}
