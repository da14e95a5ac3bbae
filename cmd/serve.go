package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/presupuestosam/internal/api"
	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/config"
	"github.com/presupuestosam/internal/extractor"
	"github.com/presupuestosam/internal/printer"
	"github.com/presupuestosam/internal/report"
)

// ServeCommand returns the CLI command for starting the API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the budget assistant API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides config)",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	port := cfg.Server.Port
	if c.IsSet("port") {
		port = c.Int("port")
	}

	// One provider client for the whole process, injected into both the
	// orchestrator and the extractor.
	client := assistant.NewOpenAIClient(assistant.ClientConfig{
		APIKey:      cfg.OpenAI.APIKey,
		AssistantID: cfg.OpenAI.AssistantID,
		Model:       cfg.OpenAI.Model,
	})

	orchestrator := assistant.NewOrchestrator(client,
		assistant.WithPolling(cfg.Assistant.PollInterval, cfg.Assistant.PollAttempts))
	budgets := extractor.New(client)
	reports := report.NewService(printer.New(cfg.Printer.URL))

	fmt.Printf("Starting presupuestosam API server on port %d...\n", port)
	server := api.NewServer(port, orchestrator, budgets, reports)
	return server.Start()
}
