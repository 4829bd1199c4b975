package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/standuplabs/standup/internal/config"
	"github.com/standuplabs/standup/internal/llm"
	"github.com/standuplabs/standup/internal/server"
	"github.com/standuplabs/standup/internal/store"
	"github.com/standuplabs/standup/internal/team"
	"github.com/standuplabs/standup/internal/vcs"
)

var (
	serveAddr     string
	serveDBPath   string
	serveDebugLog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat server",
	Long: `Start the standup chat server.

Clients connect over a websocket at /ws. A small REST surface is
available under /api for health checks and state reads.

Configuration is read from ~/.config/standup/config.yaml, a .standup.yaml
in the project tree, and environment variables (ANTHROPIC_API_KEY,
GITHUB_TOKEN, STANDUP_ADDR).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite database path (overrides config)")
	serveCmd.Flags().StringVar(&serveDebugLog, "debug-log", "", "Write pipeline debug output to this file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDBPath != "" {
		cfg.Database.Path = serveDBPath
	}

	fmt.Printf("Starting standup server...\n\n")

	// Pipeline debug logging
	if serveDebugLog != "" {
		logger, err := team.NewDebugLogger(serveDebugLog)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer logger.Close()
		team.SetDebugLogger(logger)
		printStatus("✓", fmt.Sprintf("Debug log at %s", serveDebugLog), color.FgGreen)
	}

	// Anthropic credentials
	apiKey, err := config.GetAPIKey(cfg)
	if err != nil && !cfg.Anthropic.UseBedrock {
		printStatus("✗", "No Anthropic API key configured", color.FgRed)
		return fmt.Errorf("set ANTHROPIC_API_KEY or anthropic.api_key in %s", config.GetUserConfigPath())
	}
	printStatus("✓", fmt.Sprintf("Anthropic key %s", config.MaskAPIKey(apiKey)), color.FgGreen)

	// Storage
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = store.DefaultPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	printStatus("✓", fmt.Sprintf("Database at %s", dbPath), color.FgGreen)

	// Agent registry
	registry := team.NewRegistry(db)
	if err := registry.Load(); err != nil {
		return fmt.Errorf("loading agents: %w", err)
	}
	printStatus("✓", fmt.Sprintf("Loaded %d agents", len(registry.Snapshot())), color.FgGreen)

	// Optional agents file: apply now and watch for live edits.
	if cfg.AgentsFile != "" {
		if f, err := config.LoadAgentsFile(cfg.AgentsFile); err == nil {
			applyAgentsFile(registry, f)
			printStatus("✓", fmt.Sprintf("Applied agents file %s", cfg.AgentsFile), color.FgGreen)
		} else {
			printStatus("⚠", fmt.Sprintf("Agents file: %v", err), color.FgYellow)
		}

		watcher, err := config.WatchAgentsFile(cfg.AgentsFile,
			func(f *config.AgentsFile) { applyAgentsFile(registry, f) },
			func(err error) { fmt.Fprintf(os.Stderr, "agents file reload: %v\n", err) },
		)
		if err != nil {
			printStatus("⚠", fmt.Sprintf("Agents file watch failed: %v", err), color.FgYellow)
		} else {
			defer watcher.Close()
			printStatus("✓", "Watching agents file for changes", color.FgGreen)
		}
	}

	// Generation client
	gen, err := llm.NewClient(llm.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return fmt.Errorf("creating generation client: %w", err)
	}
	printStatus("✓", fmt.Sprintf("Using model %s", gen.Model()), color.FgGreen)

	// GitHub workflow is optional: without a token and target repo the
	// team just chats.
	var dispatcher *team.Dispatcher
	token := config.GetGitHubToken(cfg)
	if token != "" && cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		gh := vcs.NewClient(token, cfg.GitHub.Owner, cfg.GitHub.Repo)
		dispatcher = team.NewDispatcher(gen, gh, db, cfg.GitHub.BaseBranch, cfg.Chat.MergeDelay)
		printStatus("✓", fmt.Sprintf("PR workflow targets %s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo), color.FgGreen)
	} else {
		printStatus("⚠", "GitHub not configured, PR workflow disabled", color.FgYellow)
	}

	orch := team.NewOrchestrator(registry, db, gen, dispatcher, team.OrchestratorConfig{
		ContextLimit:  cfg.Chat.ContextLimit,
		ResponseDelay: cfg.Chat.ResponseDelay,
	})

	srv := server.New(cfg.Server.Addr, db, registry, orch, cfg.Chat.HistoryLimit)

	// Serve until interrupted.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("\n%s Listening on %s\n", color.GreenString("✓"), cfg.Server.Addr)
	fmt.Printf("  Connect with: standup chat --server ws://localhost%s/ws\n\n", cfg.Server.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if calls := gen.Tracker().Calls(); calls > 0 {
		in, out := gen.Tracker().Total()
		fmt.Printf("  %d generation calls, %d input / %d output tokens\n", calls, in, out)
	}
	return nil
}

// applyAgentsFile pushes agents file overrides into the registry. Bad
// entries are reported and skipped; the rest still apply.
func applyAgentsFile(registry *team.Registry, f *config.AgentsFile) {
	for _, seed := range f.Agents {
		if seed.Role != "" {
			if err := registry.SetRole(seed.ID, seed.Role); err != nil {
				fmt.Fprintf(os.Stderr, "agents file: %v\n", err)
				continue
			}
		}
		if seed.SystemPrompt != "" {
			if err := registry.SetSystemPrompt(seed.ID, seed.SystemPrompt); err != nil {
				fmt.Fprintf(os.Stderr, "agents file: %v\n", err)
				continue
			}
		}
		if seed.Active != nil {
			if err := registry.SetActive(seed.ID, *seed.Active); err != nil {
				fmt.Fprintf(os.Stderr, "agents file: %v\n", err)
			}
		}
	}
}

// printStatus prints a colored status line.
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	c.Printf("  %s ", symbol)
	fmt.Println(message)
}
