package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/historical"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/worker"
)

var (
	searchMode  string
	searchCount int
	refineFB    string
	jsonOut     bool
	verifyFile  string
	cmdTimeout  time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find historical figures by name or description",
	Long: `Search asks the LLM for historical or public figures matching a query.

The mode is detected from the query unless --mode is given: names such as
"Mark Twain" run a name search, descriptions such as "19th century American
humorists" run a discovery search. --refine asks for better matches given
feedback on the original criteria.

Example:
  ghostwriter search "Mark Twain"
  ghostwriter search "famous Victorian poets" --count 8
  ghostwriter search "Victorian poets" --refine "more women, less religious"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <name>",
	Short: "Analyze a figure's writing style",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [name]",
	Short: "Check that a figure is real and documented enough to emulate",
	Long: `Verify asks whether a figure is a real person with enough documented
writing to analyze. With --file, every non-empty line of the file is
verified concurrently.

Example:
  ghostwriter verify "Ada Lovelace"
  ghostwriter verify --file names.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

var styleGuideCmd = &cobra.Command{
	Use:   "style-guide <name>",
	Short: "Analyze a figure and derive a structured style guide",
	Args:  cobra.ExactArgs(1),
	RunE:  runStyleGuide,
}

func init() {
	rootCmd.AddCommand(searchCmd, analyzeCmd, verifyCmd, styleGuideCmd)

	searchCmd.Flags().StringVar(&searchMode, "mode", "auto", "search mode: auto, name or description")
	searchCmd.Flags().IntVar(&searchCount, "count", historical.DefaultFigureCount, "number of figures to request")
	searchCmd.Flags().StringVar(&refineFB, "refine", "", "feedback for refining the results")

	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "file with one figure name per line")

	for _, c := range []*cobra.Command{searchCmd, analyzeCmd, verifyCmd, styleGuideCmd} {
		c.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
		c.Flags().DurationVar(&cmdTimeout, "timeout", 5*time.Minute, "overall timeout")
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	r, err := a.researcher()
	if err != nil {
		return err
	}
	mode, err := extract.ParseMode(searchMode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
	defer cancel()

	var figures []model.Figure
	if refineFB != "" {
		figures, err = r.Refine(ctx, args[0], refineFB)
	} else {
		figures, mode, err = r.Search(ctx, args[0], mode, searchCount)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(os.Stdout, figures)
	}
	if refineFB == "" {
		fmt.Fprintf(os.Stderr, "Search mode: %s\n\n", mode)
	}
	printFigures(os.Stdout, figures)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	r, err := a.researcher()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
	defer cancel()

	analysis, err := r.Analyze(ctx, args[0])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(os.Stdout, analysis)
	}
	printAnalysis(os.Stdout, analysis)
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	if (verifyFile == "") == (len(args) == 0) {
		return fmt.Errorf("give either a name or --file")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	r, err := a.researcher()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
	defer cancel()

	if verifyFile == "" {
		v, err := r.Verify(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(os.Stdout, v)
		}
		printVerification(os.Stdout, v)
		return nil
	}

	names, err := worker.ReadLines(verifyFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Verifying %d figures with %d workers...\n\n", len(names), a.cfg.Concurrency.Workers)

	results := a.processor().ProcessItems(ctx, names, func(ctx context.Context, name string) (any, error) {
		return r.Verify(ctx, name)
	})

	verified, failed := 0, 0
	out := make([]*model.Verification, 0, len(results))
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Item, res.Error)
			continue
		}
		v := res.Value.(*model.Verification)
		if v.IsVerified() {
			verified++
		}
		out = append(out, v)
		if !jsonOut {
			printVerification(os.Stdout, v)
			fmt.Println()
		}
	}

	if jsonOut {
		if err := printJSON(os.Stdout, out); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "Total: %d  Verified: %d  Not verified: %d  Failed: %d\n",
		len(names), verified, len(out)-verified, failed)
	return nil
}

func runStyleGuide(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	p, err := a.provider()
	if err != nil {
		return err
	}
	r := historical.NewResearcher(p, a.cfg.Generation, a.logger)
	g := historical.NewProfileGenerator(p, a.cfg.Generation, a.logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
	defer cancel()

	analysis, err := r.Analyze(ctx, args[0])
	if err != nil {
		return err
	}
	guide, err := g.GenerateStyleGuide(ctx, *analysis)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(os.Stdout, guide)
	}
	printStyleGuide(os.Stdout, guide)
	return nil
}
