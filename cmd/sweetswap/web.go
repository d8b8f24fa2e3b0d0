package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap"
	"github.com/vovakirdan/sweet-swap/internal/server"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP and WebSocket server",
	Long: `Serve the JSON API and live WebSocket sessions for a browser client.

Settings are read from the environment and from a .env file in the working
directory:
  PORT           - listen port when --addr is not given (default 8080)
  CLIENT_ORIGIN  - allowed CORS origin (default http://localhost:5173)
  SWEETSWAP_DB   - database path when --db is not given

Examples:
  sweetswap web
  sweetswap web --addr :9000 --log-level debug`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "Listen address (default :$PORT)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger := newLogger("sweetswap-web")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not read .env", "error", err)
	}

	addr := flagWebAddr
	if addr == "" {
		addr = ":" + getEnv("PORT", "8080")
	}
	if db := os.Getenv("SWEETSWAP_DB"); db != "" && !cmd.Flags().Changed("db") {
		flagDBPath = db
	}

	_, rules, err := sweetswap.LoadRules(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	srv := server.New(server.Options{
		Rules:        rules,
		Store:        store,
		Logger:       logger,
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, addr)
}

// getEnv returns the value of k or def if unset or empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
