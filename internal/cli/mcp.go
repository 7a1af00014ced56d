package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/mcp"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the response parsers as MCP tools over stdio",
	Long: `Serve-mcp starts a Model Context Protocol server on stdin/stdout.

Tools: detect_search_mode, parse_figures, parse_analysis,
parse_verification, parse_style_guide, parse_examples, list_authors and
get_author. Logs go to stderr so they never corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		s := mcp.NewServer(mcp.ServerConfig{
			Version: Version,
			Storage: a.storage(),
			Logger:  a.logger,
		})
		return mcp.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}
