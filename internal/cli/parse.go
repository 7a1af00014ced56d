package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/ingest"
)

var (
	parseName    string
	parseDialect string
)

var parseKinds = []string{"figures", "analysis", "verification", "style-guide", "examples", "mode"}

var parseCmd = &cobra.Command{
	Use:   "parse <kind> <file>",
	Short: "Parse a saved LLM response offline",
	Long: `Parse runs one of the response parsers over a saved response and prints
the result as JSON. No LLM is contacted. HTML files are converted to
markdown first.

Kinds: ` + strings.Join(parseKinds, ", ") + `

For "mode" the file holds the search query.

Example:
  ghostwriter parse figures discovery.txt
  ghostwriter parse figures names.txt --dialect name_search
  ghostwriter parse verification reply.html --name "Mark Twain"`,
	Args: cobra.ExactArgs(2),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseName, "name", "", "figure name for analysis and verification")
	parseCmd.Flags().StringVar(&parseDialect, "dialect", "discovery", "figure list dialect: discovery, name_search or refinement")
}

func runParse(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	a, err := newApp()
	if err != nil {
		return err
	}
	response, err := ingest.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := parseResponse(extract.New(a.logger), kind, response)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, result)
}

// parseResponse dispatches to the parser for kind
func parseResponse(p *extract.Parser, kind, response string) (any, error) {
	switch kind {
	case "figures":
		dialect, err := extract.ParseDialect(parseDialect)
		if err != nil {
			return nil, err
		}
		return p.ParseFigures(response, dialect), nil
	case "analysis":
		return p.ParseAnalysis(parseName, response), nil
	case "verification":
		return p.ParseVerification(parseName, response), nil
	case "style-guide", "style_guide":
		return p.ParseStyleGuide(response), nil
	case "examples":
		return p.ParseExamples(response), nil
	case "mode":
		query := strings.TrimSpace(response)
		return map[string]any{"query": query, "mode": extract.DetectMode(query), "signals": extract.ScoreQuery(query)}, nil
	default:
		return nil, fmt.Errorf("unknown kind: %s (supported: %s)", kind, strings.Join(parseKinds, ", "))
	}
}
