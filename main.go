// notion-docs-mcp exposes Notion pages and databases to MCP clients as
// Markdown documents with a YAML header.
//
// Commands:
//   - stdio (default): serve MCP over stdin/stdout
//   - http: serve MCP over streamable HTTP at /mcp, with health endpoints
//
// The integration token comes from NOTION_API_KEY (or NOTION_TOKEN), a .env
// file, or the config file. It is only required once a tool needs the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vthunder/notion-docs-mcp/config"
	"github.com/vthunder/notion-docs-mcp/mcpserver"
	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/ops"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:   "notion-docs-mcp",
		Usage:  "MCP server for reading and writing Notion pages as Markdown documents",
		Action: runStdio,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional YAML config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "stdio",
				Usage:  "Serve MCP over stdin/stdout",
				Action: runStdio,
			},
			{
				Name:  "http",
				Usage: "Serve MCP over streamable HTTP",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "Listen port (overrides http.port)",
					},
				},
				Action: runHTTP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setup loads the configuration and builds the tool server. The remote
// client is created on first use so the server starts without a token.
func setup(cmd *cli.Command) (*config.Config, *mcpserver.Server, *slog.Logger, error) {
	cfg := config.NewDefault()
	if err := config.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv()
	if port := cmd.Int("port"); port != 0 {
		cfg.HTTP.Port = int(port)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	// Stdout carries the stdio transport, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	service := sync.OnceValues(func() (*ops.Service, error) {
		client, err := notion.NewClient(cfg.Notion, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("notion client ready", slog.String("base_url", cfg.Notion.BaseURL), slog.String("version", cfg.Notion.Version))
		return ops.New(client, logger), nil
	})

	return cfg, mcpserver.New(service, version, logger), logger, nil
}

func runStdio(_ context.Context, cmd *cli.Command) error {
	_, srv, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	logger.Info("serving MCP over stdio")
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func runHTTP(ctx context.Context, cmd *cli.Command) error {
	cfg, srv, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	streamable := server.NewStreamableHTTPServer(srv.MCPServer())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/mcp", streamable)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := streamable.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP transport shutdown error", slog.String("error", err.Error()))
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
