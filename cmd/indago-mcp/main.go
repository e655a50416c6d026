package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/services/browser"
	"github.com/ternarybob/indago/internal/services/enrich"
	"github.com/ternarybob/indago/internal/services/events"
	"github.com/ternarybob/indago/internal/services/leads"
	"github.com/ternarybob/indago/internal/services/linkedin"
	"github.com/ternarybob/indago/internal/services/parser"
	"github.com/ternarybob/indago/internal/storage"
)

func main() {
	// Load configuration
	configPath := os.Getenv("INDAGO_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("indago.toml"); err == nil {
			configPath = "indago.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize minimal logger for MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	// Initialize storage
	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer storageManager.Close()

	// Initialize the lead pipeline
	eventService := events.NewService(logger)
	defer eventService.Close()

	leadService := leads.NewService(
		config,
		logger,
		parser.NewService(&config.LLM, logger),
		browser.NewLauncher(&config.Browser, logger),
		linkedin.NewAuthenticator(&config.Scraper, logger),
		linkedin.NewExtractor(&config.Scraper, logger),
		enrich.NewService(&config.Enrichment, logger),
		storageManager,
		eventService,
	)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"indago",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register lead generation tools
	mcpServer.AddTool(createParseQueryTool(), handleParseQuery(leadService, logger))
	mcpServer.AddTool(createStartLeadSearchTool(), handleStartLeadSearch(leadService, logger))
	mcpServer.AddTool(createGetLeadJobTool(), handleGetLeadJob(storageManager, logger))
	mcpServer.AddTool(createListLeadJobsTool(), handleListLeadJobs(storageManager, logger))
	mcpServer.AddTool(createGetLeadProfilesTool(), handleGetLeadProfiles(storageManager, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
