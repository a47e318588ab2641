package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/jobpost"
	"github.com/hrakoto/tailor/internal/model"
	"github.com/hrakoto/tailor/internal/output"
	"github.com/hrakoto/tailor/internal/pipeline"
	"github.com/hrakoto/tailor/internal/store"
)

var (
	runJobPath       string
	runCVPath        string
	runOutDir        string
	runEmbellishment int
	runDryRun        bool
	runCopy          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a tailored résumé, cover letter, and company insights",
	Long: "Runs the full tailoring pipeline against a job posting: tailored résumé, " +
		"cover letter, company insights, and CV observations. Results are written " +
		"to the output directory and the run is recorded in the application history.",
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runJobPath, "job", "j", "", "path to the job posting text, or \"-\" for stdin (required)")
	runCmd.Flags().StringVar(&runCVPath, "cv", "", "path to a master CV file (default: the CV imported via `tailor import`)")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", "", "output directory (default: from config)")
	runCmd.Flags().IntVarP(&runEmbellishment, "embellishment", "e", 0, "embellishment level 1-10 (default: from config)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "do not record the run in the application history")
	runCmd.Flags().StringVar(&runCopy, "copy", "", "copy an artifact to the clipboard: resume, cover-letter, or insights")
	_ = runCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(runCmd)
}

var (
	stageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	successBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Render("✓")
	warningBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render("!")
	infoBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Render("i")
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runOutDir != "" {
		cfg.OutputDir = runOutDir
	}
	if runEmbellishment != 0 {
		cfg.Embellishment = runEmbellishment
	}

	params := model.TailoringParameters{EmbellishmentLevel: cfg.Embellishment}
	if params.EmbellishmentLevel < model.MinEmbellishment || params.EmbellishmentLevel > model.MaxEmbellishment {
		return fmt.Errorf("embellishment level must be between %d and %d", model.MinEmbellishment, model.MaxEmbellishment)
	}
	if runCopy != "" {
		if _, ok := copyTargets[runCopy]; !ok {
			return fmt.Errorf("invalid --copy value %q (want resume, cover-letter, or insights)", runCopy)
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	jobText, err := readJobText(runJobPath)
	if err != nil {
		return err
	}

	masterCV, err := resolveMasterCV(st, runCVPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg, st)
	if err != nil {
		return err
	}

	profile, err := loadProfileOrDefault(st)
	if err != nil {
		return err
	}

	var history model.HistoryStore = st
	if runDryRun {
		logger.Info("dry-run mode: this run will not be recorded")
		history = store.NewNopHistory()
	}

	orch := pipeline.New(client, history, profile, params, logger,
		pipeline.WithProgress(func(p pipeline.Progress) {
			fmt.Printf("%s %s...\n", stageStyle.Render("▸"), p.Stage)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bundle, err := orch.Run(ctx, masterCV, jobText)
	if err != nil {
		if orch.Stage() == pipeline.StageNone {
			return fmt.Errorf("tailoring failed: %w", err)
		}
		return fmt.Errorf("tailoring failed at %s: %w", orch.Stage(), err)
	}

	sink := output.NewFileSink(cfg.OutputDir)
	files := []struct{ name, content string }{
		{"resume.md", bundle.Resume},
		{"cover_letter.md", bundle.CoverLetter},
		{"company_insights.md", bundle.CompanyInsights},
	}
	for _, f := range files {
		path, err := sink.Deliver(f.name, f.content)
		if err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		fmt.Printf("%s wrote %s\n", successBadge, pathStyle.Render(path))
	}

	if len(bundle.Observations) > 0 {
		fmt.Println("\nObservations:")
		for _, obs := range bundle.Observations {
			fmt.Printf("  %s %s\n", observationBadge(obs.Kind), obs.Message)
		}
	}

	if runCopy != "" {
		if err := output.CopyToClipboard(copyTargets[runCopy](bundle)); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		} else {
			fmt.Printf("%s %s copied to clipboard\n", successBadge, runCopy)
		}
	}

	return nil
}

// copyTargets maps --copy values to the bundle field they select.
var copyTargets = map[string]func(*model.ResultBundle) string{
	"resume":       func(b *model.ResultBundle) string { return b.Resume },
	"cover-letter": func(b *model.ResultBundle) string { return b.CoverLetter },
	"insights":     func(b *model.ResultBundle) string { return b.CompanyInsights },
}

func observationBadge(kind string) string {
	switch kind {
	case model.ObservationSuccess:
		return successBadge
	case model.ObservationWarning:
		return warningBadge
	default:
		return infoBadge
	}
}

func readJobText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read job posting from stdin: %w", err)
		}
		return string(data), nil
	}
	text, err := jobpost.ReadDocument(path)
	if err != nil {
		return "", fmt.Errorf("read job posting %s: %w", path, err)
	}
	return text, nil
}

type masterCVStore interface {
	LoadMasterCV() (string, error)
}

// resolveMasterCV prefers an explicit --cv file, falling back to the CV
// saved by `tailor import`. Files go through the same txt/md intake guard
// as import.
func resolveMasterCV(st masterCVStore, path string) (string, error) {
	if path != "" {
		text, err := jobpost.ReadDocument(path)
		if err != nil {
			return "", fmt.Errorf("read master CV %s: %w", path, err)
		}
		return text, nil
	}
	cv, err := st.LoadMasterCV()
	if err != nil {
		return "", fmt.Errorf("load master CV: %w", err)
	}
	if strings.TrimSpace(cv) == "" {
		return "", fmt.Errorf("no master CV found: run `tailor import` or pass --cv")
	}
	return cv, nil
}
