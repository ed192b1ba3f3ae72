package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"toneterm/internal/analysis"
	"toneterm/internal/config"
	"toneterm/internal/model"
	"toneterm/internal/session"
	"toneterm/internal/store"
	"toneterm/internal/tui"
	"toneterm/internal/util"
)

func main() {
	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot determine config directory: %v\n", err)
		os.Exit(1)
	}

	configPath := flag.String("config", filepath.Join(configDir, "config.yaml"), "path to config file")
	baseURL := flag.String("base-url", "", "analysis service URL (overrides config)")
	showHistory := flag.Bool("history", false, "print recent history and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath, configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		if err := cfg.OverrideBaseURL(*baseURL); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -base-url: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var db *store.SQLiteStore
	if cfg.HistoryPath != "" {
		db, err = store.NewSQLiteStore(cfg.HistoryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open history database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	if *showHistory {
		if db == nil {
			fmt.Fprintln(os.Stderr, "History is disabled (history_path is empty)")
			os.Exit(1)
		}
		if err := printHistory(os.Stdout, db); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	client := analysis.New(analysis.Config{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Logger:           logger,
	})
	sess := session.New(client, logger)
	logger.Info("session started", "session", sess.ID.String(), "base_url", cfg.BaseURL)

	var hs tui.HistoryStore
	if db != nil {
		hs = db
	}
	appModel := tui.NewAppModel(sess, hs, logger)
	p := tea.NewProgram(&appModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session ended", "session", sess.ID.String())
}

// newLogger writes to the configured log file since the TUI owns the terminal.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func printHistory(w io.Writer, db *store.SQLiteStore) error {
	entries, err := db.Recent(context.Background(), 50)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SETTLED\tWORKFLOW\tTONE\tSCORE\tSTATUS\tINPUT\tOUTPUT")
	for _, e := range entries {
		status := "ok"
		if e.Failed {
			status = "failed"
		}
		score := ""
		if e.Workflow == model.WorkflowSentiment {
			score = fmt.Sprintf("%.2f", e.Score)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.SettledAt.Local().Format("2006-01-02 15:04"),
			e.Workflow, e.Tone, score, status,
			util.Preview(e.Input, 40), util.Preview(e.Output, 60))
	}
	return tw.Flush()
}
