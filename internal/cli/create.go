package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/pipeline"
)

var (
	createReq     pipeline.CreateRequest
	createTimeout time.Duration
	datasetCount  int
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an author profile and dataset from a historical figure",
	Long: `Create runs the full flow for one figure:
- Verify the figure is real and well documented
- Stop unless verified (or --override is given)
- Analyze the writing style
- Derive a style guide and author profile
- Generate training examples in batches

The author is saved under <data-dir>/authors/<author-id>/ and the run is
recorded in the run log.

Example:
  ghostwriter create "Mark Twain"
  ghostwriter create "Ada Lovelace" --examples 30 --id ada`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage author training datasets",
}

var datasetAddCmd = &cobra.Command{
	Use:   "add <author-id>",
	Short: "Generate more training examples for a saved author",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetAdd,
}

func init() {
	rootCmd.AddCommand(createCmd, datasetCmd)
	datasetCmd.AddCommand(datasetAddCmd)

	createCmd.Flags().StringVar(&createReq.AuthorID, "id", "", "author ID (default: derived from the name)")
	createCmd.Flags().StringVar(&createReq.Description, "description", "", "profile description")
	createCmd.Flags().IntVar(&createReq.Examples, "examples", pipeline.DefaultExampleCount, "number of training examples")
	createCmd.Flags().BoolVar(&createReq.Override, "override", false, "continue even if verification fails")
	createCmd.Flags().BoolVar(&createReq.Overwrite, "overwrite", false, "replace an existing author")
	createCmd.Flags().DurationVar(&createTimeout, "timeout", 30*time.Minute, "overall timeout")

	datasetAddCmd.Flags().IntVar(&datasetCount, "count", pipeline.DefaultExampleCount, "number of examples to add")
	datasetAddCmd.Flags().DurationVar(&createTimeout, "timeout", 30*time.Minute, "overall timeout")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if createReq.Examples < 1 {
		return fmt.Errorf("--examples must be positive")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	p, closeRuns, err := a.pipeline()
	if err != nil {
		return err
	}
	defer closeRuns()

	ctx, cancel := context.WithTimeout(cmd.Context(), createTimeout)
	defer cancel()
	if err := p.CheckProvider(ctx); err != nil {
		return err
	}

	req := createReq
	req.Name = args[0]

	result, err := p.CreateAuthor(ctx, req)
	if errors.Is(err, pipeline.ErrNotVerified) {
		printVerification(os.Stderr, result.Verification)
		return fmt.Errorf("%w (use --override to continue anyway)", err)
	}
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	if err := p.Save(result); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	dir, _ := a.storage().Dir(result.AuthorID)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "  Author Created\n")
	fmt.Fprintf(os.Stderr, "%s\n", rule)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Author:     %s (%s)\n", result.Profile.Name, result.AuthorID)
	fmt.Fprintf(os.Stderr, "  Status:     %s\n", result.Verification.Status)
	fmt.Fprintf(os.Stderr, "  Tone:       %s\n", result.Profile.StyleGuide.Tone)
	fmt.Fprintf(os.Stderr, "  Examples:   %d\n", result.Dataset.Size())
	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", result.Duration.Round(time.Second))
	fmt.Fprintf(os.Stderr, "  Saved to:   %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Run:        %s\n", result.RunID)
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}

func runDatasetAdd(cmd *cobra.Command, args []string) error {
	if datasetCount < 1 {
		return fmt.Errorf("--count must be positive")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	p, closeRuns, err := a.pipeline()
	if err != nil {
		return err
	}
	defer closeRuns()

	ctx, cancel := context.WithTimeout(cmd.Context(), createTimeout)
	defer cancel()
	if err := p.CheckProvider(ctx); err != nil {
		return err
	}

	result, err := p.ExtendDataset(ctx, args[0], datasetCount)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added %d examples to %s (%d total)\n", result.Added, args[0], result.Total)
	return nil
}
