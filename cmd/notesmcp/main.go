package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesmcp/internal/audit"
	"notesmcp/internal/catalog"
	"notesmcp/internal/config"
	"notesmcp/internal/notes"
	"notesmcp/internal/osascript"
	"notesmcp/internal/server"

	"github.com/spf13/cobra"
)

const appName = "notesmcp"

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "notesmcp",
		Short: "MCP server for the macOS Notes app",
		Long:  "notesmcp exposes Apple Notes operations (list, search, read, create, edit) as MCP tools backed by osascript.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ~/.notesmcp/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(gatewayCmd())
	root.AddCommand(callCmd())
	root.AddCommand(toolsCmd())
	root.AddCommand(auditCmd())
	root.AddCommand(doctorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the config file, falling back to defaults with a warning.
func loadConfig() *config.Config {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("config not found, using defaults", "path", cfgPath, "err", err)
		return config.Defaults()
	}
	return cfg
}

// setupLogger rebuilds the process logger from config. Logs always go to
// stderr (stdout carries the stdio MCP transport) or to the configured
// log file.
func setupLogger(cfg *config.Config) error {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := os.Stderr
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return nil
}

// buildGateway wires the runner, the five note tools, and the optional
// audit store into a gateway. The returned cleanup closes the audit store.
func buildGateway(cfg *config.Config) (*server.Gateway, func(), error) {
	runner := osascript.NewRunner(osascript.Config{
		Bin:            cfg.Script.Bin,
		TimeoutSeconds: cfg.Script.Timeout,
		MaxOutputBytes: cfg.Script.MaxOutputBytes,
		Logger:         logger,
	})

	notesCfg := notes.Config{
		Account:       cfg.Notes.Account,
		DefaultFolder: cfg.Notes.DefaultFolder,
	}

	cat := catalog.New(logger,
		notes.NewListTool(runner),
		notes.NewSearchTool(runner),
		notes.NewReadTool(runner),
		notes.NewCreateTool(runner, notesCfg),
		notes.NewEditTool(runner),
	)

	var auditStore *audit.Store
	cleanup := func() {}
	if cfg.Audit.Enabled {
		store, err := audit.NewStore(cfg.Audit.DBPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit store: %w", err)
		}
		if n, err := store.Prune(context.Background(), cfg.Audit.RetentionDays); err == nil && n > 0 {
			logger.Info("pruned audit entries", "count", n)
		}
		auditStore = store
		cleanup = func() { store.Close() }
	}

	gw := server.New(server.Config{
		Catalog: cat,
		Logger:  logger,
		Audit:   auditStore,
	})
	return gw, cleanup, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir := config.DefaultConfigDir()
			cfgPath := config.DefaultConfigPath()
			if err := os.MkdirAll(cfgDir, 0o755); err != nil {
				return err
			}
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			if err := config.Save(cfgPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := setupLogger(cfg); err != nil {
				return err
			}

			gw, cleanup, err := buildGateway(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("serving MCP over stdio", "version", version)
			return gw.ServeStdio(appName, version)
		},
	}
}

func gatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Serve MCP over SSE (HTTP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := setupLogger(cfg); err != nil {
				return err
			}

			gw, cleanup, err := buildGateway(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port)
			baseURL := cfg.Gateway.BaseURL
			if baseURL == "" {
				baseURL = "http://" + addr
			}

			mcpSrv := gw.MCPServer(appName, version)
			httpSrv := &http.Server{
				Addr:    addr,
				Handler: gw.Router(baseURL, mcpSrv),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("gateway listening", "addr", addr, "baseUrl", baseURL)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down gateway")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			}
		},
	}
}

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke a tool once and print its text result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := setupLogger(cfg); err != nil {
				return err
			}

			toolArgs := map[string]any{}
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
					return fmt.Errorf("invalid arguments JSON: %w", err)
				}
			}

			gw, cleanup, err := buildGateway(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Println(gw.Call(ctx, args[0], toolArgs))
			return nil
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			gw, cleanup, err := buildGateway(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := json.MarshalIndent(map[string]any{"tools": gw.Definitions()}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func auditCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent tool invocations from the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cfg.Audit.Enabled {
				return fmt.Errorf("audit log is disabled (set audit.enabled in %s)", resolveConfigPath())
			}

			store, err := audit.NewStore(cfg.Audit.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No invocations recorded.")
				return nil
			}
			for _, e := range entries {
				status := "ok"
				if !e.OK {
					status = "error: " + e.Error
				}
				fmt.Printf("%s  %-14s %4dms  %s\n",
					e.CreatedAt.Format(time.RFC3339), e.Tool, e.DurationMS, status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}
