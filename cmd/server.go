package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brk3/habitdash/internal/assistant"
	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/internal/server"
	"github.com/brk3/habitdash/internal/storage/bolt"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the reference habit service",
	Long: `The "server" command runs the habit service the client talks to. Habits are
stored in a local bolt file. Set HABITDASH_GEMINI_API_KEY to have Gemini write
briefings and plans; without it they come from built-in templates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx)
	},
}

func startServer(ctx context.Context) error {
	store, err := bolt.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.Server.DBPath, err)
	}
	defer store.Close()

	generator, err := newGenerator(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           server.New(store, generator).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Server starting", "addr", cfg.Server.ListenAddr, "db", cfg.Server.DBPath)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server stopped")
		return nil
	}
	return err
}

// newGenerator picks the assistant backend. Gemini failures fall back to the
// templates so the assistant endpoints keep answering.
func newGenerator(ctx context.Context) (assistant.Generator, error) {
	if cfg.Server.GeminiAPIKey == "" {
		logger.Info("No Gemini API key, using template assistant")
		return assistant.Template{}, nil
	}
	gemini, err := assistant.NewGemini(ctx, cfg.Server.GeminiAPIKey, cfg.Server.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	logger.Info("Using Gemini assistant", "model", cfg.Server.GeminiModel)
	return assistant.Fallback{Primary: gemini, Secondary: assistant.Template{}}, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
