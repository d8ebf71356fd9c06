package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/petmatch/internal/logger"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can match
adopters with animals.

Tools:
  find_matches  rank animals for a set of preferences
  build_query   show the query text built from preferences

Resources:
  petmatch://questions     the adopter questionnaire
  petmatch://animals/{id}  one animal's record

By default the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead.

Examples:
  # Stdio mode (for desktop assistants)
  petmatch mcp

  # HTTP mode (for MCP Inspector, remote access)
  petmatch mcp --http :8081

Assistant configuration:
  {
    "mcpServers": {
      "petmatch": {
        "command": "/path/to/petmatch",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := useServiceLogLevel(settings); err != nil {
		return err
	}

	ctx := cmd.Context()
	eng, err := openEngine(ctx, settings)
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck

	server, err := mcp.NewServer(&mcp.Ports{
		Match:    eng.match,
		DefaultK: settings.Match.Neighbors,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		log := logger.With("cli")
		log.Info().Str("addr", mcpHTTPAddr).Msg("serving MCP over HTTP")
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
