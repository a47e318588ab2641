package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hrakoto/tailor/internal/config"
	"github.com/hrakoto/tailor/internal/llm"
	"github.com/hrakoto/tailor/internal/model"
	"github.com/hrakoto/tailor/internal/prompt"
	"github.com/hrakoto/tailor/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor your résumé and cover letter to a job posting",
	Long:  "Tailor rewrites your master CV and drafts a cover letter for a specific job posting, using an OpenAI-compatible completion API.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: TAILOR_CONFIG env var or ./tailor.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Best effort: a missing .env is not an error.
	cobra.OnInitialize(func() { _ = godotenv.Load() })
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > TAILOR_CONFIG env var > "./tailor.yaml"
// A path the user named must exist; only the implicit ./tailor.yaml
// lookup falls back to defaults when the file is absent.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("TAILOR_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "tailor.yaml"
		}
	}
	if explicit {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.StorePath, err)
	}
	return st, nil
}

// buildClient assembles the completion client. The API key from the config
// (or its expanded env var) wins; otherwise the key saved via `tailor setup`
// is used. A missing key is not an error here: the client reports it as
// unconfigured and the pipeline refuses to run before any network call.
func buildClient(cfg *config.Config, st *store.SQLiteStore) (*llm.Client, error) {
	apiKey := cfg.AI.APIKey
	if apiKey == "" {
		saved, err := st.LoadAPIKey()
		if err != nil {
			return nil, fmt.Errorf("load api key: %w", err)
		}
		apiKey = saved
	}
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	return llm.NewClient(cfg.AI.BaseURL, apiKey, cfg.AI.Model, httpClient), nil
}

// complete sends a single prompt to the model outside the tailoring pipeline
// (import, enhance, suggest).
func complete(ctx context.Context, client *llm.Client, sp prompt.StagePrompt) (string, error) {
	return client.Complete(ctx,
		[]model.Message{{Role: model.RoleUser, Content: sp.User}}, sp.System)
}

// loadProfileOrDefault returns the saved profile, or sensible defaults when
// setup has not been run yet.
func loadProfileOrDefault(st *store.SQLiteStore) (model.Profile, error) {
	p, ok, err := st.LoadProfile()
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return model.DefaultProfile(), nil
	}
	return p, nil
}
