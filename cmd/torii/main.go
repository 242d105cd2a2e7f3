package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"torii/cmd/torii/toolbox"
	"torii/internal/agent"
	"torii/internal/config"
	"torii/internal/llm"
	"torii/internal/logger"
	"torii/internal/netdev"
	"torii/internal/trace"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultRequest = "What software version is the router running?"

func main() {
	logger.Init()

	rootCmd := &cobra.Command{
		Use:          "torii [request]",
		Short:        "Torii is an LLM-driven Cisco IOS network assistant",
		Args:         cobra.ArbitraryArgs,
		RunE:         run,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(toolbox.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set in environment or .env file")
	}

	profile, err := config.LoadDeviceProfile(cfg.Devices.Inventory)
	if err != nil {
		return err
	}

	shutdown, err := trace.Init(ctx, cfg.Trace)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("trace shutdown failed", "error", err)
		}
	}()

	registry := toolbox.BuildRegistry(netdev.NewSSHDialer(), profile, cfg.Commands.RouteProto)
	provider := llm.NewOpenAI(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	runner := agent.NewReactRunner(provider, registry)

	request := strings.TrimSpace(strings.Join(args, " "))
	if request == "" {
		request = defaultRequest
	}

	answer, err := runner.Run(ctx, request, logEvent)
	if err != nil {
		return fmt.Errorf("agent run: %w", err)
	}

	fmt.Println(answer)
	return nil
}

// logEvent keeps progress on stderr; stdout carries only the answer.
func logEvent(ev agent.Event) {
	switch ev.Type {
	case agent.EventToolCall:
		slog.Info("tool call", "data", ev.Data)
	case agent.EventToolResult:
		slog.Debug("tool result", "data", ev.Data)
	case agent.EventError:
		slog.Error("agent error", "data", ev.Data)
	}
}
