package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/erazemk/cenik/internal/analysis"
	"github.com/erazemk/cenik/internal/api"
	"github.com/erazemk/cenik/internal/app"
	"github.com/erazemk/cenik/internal/config"
	"github.com/erazemk/cenik/internal/db"
	"github.com/erazemk/cenik/internal/ids"
	"github.com/erazemk/cenik/internal/store"
)

func main() {
	cfg, args, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stdout, config.Usage)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s", err, config.Usage)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = cmdServe(cfg)
	case "key":
		err = cmdKey(cfg, args)
	case "reset":
		err = cmdReset(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", cmd, config.Usage)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// openApp opens the database, runs migrations and loads the ledger.
// The returned function closes the database.
func openApp(ctx context.Context, cfg *config.Config) (*app.App, func(), error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, nil, err
	}

	gen, err := ids.NewSnowflake(1)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	a, err := app.New(ctx, app.Options{
		Store:           store.NewKV(database),
		Analyzer:        &analysis.Gemini{Model: cfg.Model, HTTPClient: &http.Client{}},
		IDs:             gen,
		DefaultMartName: cfg.DefaultMartName,
		EnvCredential:   cfg.EnvAPIKey,
		AnalysisTimeout: cfg.AnalysisTimeout,
	})
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	slog.Info("database ready", "path", cfg.DBPath)
	return a, func() { database.Close() }, nil
}

func cmdServe(cfg *config.Config) error {
	a, closeDB, err := openApp(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(a))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Analysis calls can take up to the configured timeout.
		WriteTimeout: cfg.AnalysisTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "model", cfg.Model)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

// cmdKey saves the API key read from the terminal, or removes it with -clear.
func cmdKey(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("key", flag.ContinueOnError)
	clearKey := fs.Bool("clear", false, "remove the saved API key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, closeDB, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if *clearKey {
		if !a.HasCredential() {
			fmt.Println("No API key saved.")
			return nil
		}
		if !confirm("Remove the saved API key?") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.ClearCredential(ctx); err != nil {
			return err
		}
		fmt.Println("API key removed.")
		return nil
	}

	key, err := readSecret("Gemini API key: ")
	if err != nil {
		return err
	}
	if err := a.SaveCredential(ctx, key); err != nil {
		return err
	}
	fmt.Println("API key saved.")
	return nil
}

// cmdReset deletes all data after confirmation.
func cmdReset(cfg *config.Config) error {
	ctx := context.Background()
	a, closeDB, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if !confirm("Delete all marts, prices and settings? This cannot be undone.") {
		fmt.Println("Aborted.")
		return nil
	}
	if err := a.ResetAllData(ctx); err != nil {
		return err
	}
	fmt.Println("All data deleted.")
	return nil
}

// readSecret reads a line without echo when stdin is a terminal, and a
// plain line otherwise (for piping the key in).
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question on the terminal. Anything other than
// "y" or "yes" is a no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
