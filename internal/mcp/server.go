// Package mcp exposes the response parsers as Model Context Protocol tools,
// so an agent holding a raw LLM response can turn it into structured data.
// Saved authors are readable through the same server when storage is set.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/ingest"
	"github.com/ppiankov/ghostwriter/internal/storage"
)

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	Version string
	Storage *storage.AuthorStorage // optional, enables author tools
	Logger  *slog.Logger
}

// NewServer creates an MCP server with every parser tool registered
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	parser := extract.New(logger.With("component", "mcp"))

	s := server.NewMCPServer(
		"ghostwriter",
		ver,
		server.WithToolCapabilities(false),
	)

	registerDetectModeTool(s)
	registerParseFiguresTool(s, parser)
	registerParseAnalysisTool(s, parser)
	registerParseVerificationTool(s, parser)
	registerParseStyleGuideTool(s, parser)
	registerParseExamplesTool(s, parser)

	if cfg.Storage != nil {
		registerListAuthorsTool(s, cfg.Storage)
		registerGetAuthorTool(s, cfg.Storage)
	}
	return s
}

// ServeStdio serves s over stdin/stdout until the client disconnects
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func responseArg() mcp.ToolOption {
	return mcp.WithString("response",
		mcp.Required(),
		mcp.Description("Raw LLM response text. HTML copied from a chat page is converted to markdown first."),
	)
}

// readResponse returns the normalized response argument
func readResponse(req mcp.CallToolRequest) (string, error) {
	raw, err := req.RequireString("response")
	if err != nil {
		return "", errors.New("response is required")
	}
	return ingest.Normalize(raw)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func registerDetectModeTool(s *server.MCPServer) {
	tool := mcp.NewTool("detect_search_mode",
		mcp.WithDescription("Classify a figure search query as a person's name or a description of the kind of figure wanted. Returns the mode and the signal counts behind it."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query, e.g. 'Mark Twain' or 'famous 19th century American humorists'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}
		signals := extract.ScoreQuery(query)
		return jsonResult(map[string]any{
			"mode":                extract.DetectMode(query),
			"name_signals":        signals.Name,
			"description_signals": signals.Description,
		})
	})
}

func registerParseFiguresTool(s *server.MCPServer, parser *extract.Parser) {
	tool := mcp.NewTool("parse_figures",
		mcp.WithDescription("Extract the list of historical figures from a discovery, name search or refinement response."),
		mcp.WithReadOnlyHintAnnotation(true),
		responseArg(),
		mcp.WithString("dialect",
			mcp.Description("Response layout (default: discovery)"),
			mcp.Enum(string(extract.DialectDiscovery), string(extract.DialectNameSearch), string(extract.DialectRefinement)),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		response, err := readResponse(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dialect := extract.DialectDiscovery
		if d, err := req.RequireString("dialect"); err == nil && d != "" {
			dialect, err = extract.ParseDialect(d)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		return jsonResult(parser.ParseFigures(response, dialect))
	})
}

func registerParseAnalysisTool(s *server.MCPServer, parser *extract.Parser) {
	tool := mcp.NewTool("parse_analysis",
		mcp.WithDescription("Extract the seven-section writing style analysis (tone, voice, formality, structure, characteristics, topics, historical context) from an analysis response."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the analyzed figure"),
		),
		responseArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError("name is required"), nil
		}
		response, err := readResponse(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(parser.ParseAnalysis(name, response))
	})
}

func registerParseVerificationTool(s *server.MCPServer, parser *extract.Parser) {
	tool := mcp.NewTool("parse_verification",
		mcp.WithDescription("Extract the verification verdict (VERIFIED, UNVERIFIED or INAPPROPRIATE) and its supporting fields from a verification response."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the verified figure"),
		),
		responseArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError("name is required"), nil
		}
		response, err := readResponse(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		v := parser.ParseVerification(name, response)
		return jsonResult(map[string]any{
			"verification": v,
			"known_status": v.IsKnownStatus(),
		})
	})
}

func registerParseStyleGuideTool(s *server.MCPServer, parser *extract.Parser) {
	tool := mcp.NewTool("parse_style_guide",
		mcp.WithDescription("Extract a style guide (tone, voice, formality, length, topics, notes) from a style guide response. Unrecognized values fall back to defaults."),
		mcp.WithReadOnlyHintAnnotation(true),
		responseArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		response, err := readResponse(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(parser.ParseStyleGuide(response))
	})
}

func registerParseExamplesTool(s *server.MCPServer, parser *extract.Parser) {
	tool := mcp.NewTool("parse_examples",
		mcp.WithDescription("Extract chat-format training examples from an example generation response. Each example has system, user and assistant messages."),
		mcp.WithReadOnlyHintAnnotation(true),
		responseArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		response, err := readResponse(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(parser.ParseExamples(response))
	})
}

func registerListAuthorsTool(s *server.MCPServer, store *storage.AuthorStorage) {
	tool := mcp.NewTool("list_authors",
		mcp.WithDescription("List the IDs of saved author profiles."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		authors, err := store.ListAuthors()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list authors: %v", err)), nil
		}
		return jsonResult(authors)
	})
}

func registerGetAuthorTool(s *server.MCPServer, store *storage.AuthorStorage) {
	tool := mcp.NewTool("get_author",
		mcp.WithDescription("Return a saved author profile and the size of its training dataset."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("author_id",
			mcp.Required(),
			mcp.Description("Author ID, e.g. 'mark_twain'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("author_id")
		if err != nil {
			return mcp.NewToolResultError("author_id is required"), nil
		}
		profile, err := store.LoadProfile(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset, err := store.LoadDataset(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"profile":  profile,
			"examples": dataset.Size(),
		})
	})
}
