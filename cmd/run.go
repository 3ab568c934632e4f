package cmd

import (
	"fmt"
	"io"
	"log"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

// runApp opens the attempt journal, builds the controller, and launches the TUI.
func runApp(cmd *cobra.Command, cfg config.Config) error {
	closeLog, err := setupLogging(cfg.DebugLog)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closeLog()

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sessionID := uuid.NewString()
	log.Printf("session %s started (config %s, feedback delay %s)", sessionID, cfg.Path, cfg.FeedbackDelay)

	ctrl := session.NewController(problemgen.New(nil), session.Options{
		FeedbackDelay: cfg.FeedbackDelay,
	})

	return app.Run(cmd.Context(), app.Options{
		Controller:     ctrl,
		Attempts:       st.AttemptRepo(),
		SessionID:      sessionID,
		StartOperation: cfg.Operation,
	})
}

// setupLogging routes the std logger to path while the UI owns the
// terminal. An empty path discards log output.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "mathdrill")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}
