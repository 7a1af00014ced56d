package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/ghostwriter/internal/storage"
)

var (
	runsAuthor string
	runsLimit  int
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Inspect saved authors",
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved authors with their dataset sizes",
	RunE:  runAuthorsList,
}

var authorsShowCmd = &cobra.Command{
	Use:   "show <author-id>",
	Short: "Show an author profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthorsShow,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run log",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent create and dataset runs",
	RunE:  runRunsList,
}

func init() {
	rootCmd.AddCommand(authorsCmd, runsCmd)
	authorsCmd.AddCommand(authorsListCmd, authorsShowCmd)
	runsCmd.AddCommand(runsListCmd)

	authorsShowCmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
	runsListCmd.Flags().StringVar(&runsAuthor, "author", "", "only runs for this author ID")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to show (0 for all)")
}

func runAuthorsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store := a.storage()

	ids, err := store.ListAuthors()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Printf("No authors in %s\n", store.Root())
		return nil
	}

	profiles, err := store.LoadProfiles(cmd.Context(), ids)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSOURCE\tEXAMPLES\tUPDATED")
	for _, p := range profiles {
		examples := "?"
		if ds, err := store.LoadDataset(p.AuthorID); err == nil {
			examples = fmt.Sprint(ds.Size())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.AuthorID, p.Name, p.SourceType, examples, p.UpdatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}

func runAuthorsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store := a.storage()

	profile, err := store.LoadProfile(args[0])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(os.Stdout, profile)
	}

	// style_guide.yml may have been edited after creation
	guide, err := store.LoadStyleGuide(args[0])
	if err != nil {
		a.logger.Warn("using style guide from profile", "error", err)
		guide = profile.StyleGuide
	}

	fmt.Printf("%s (%s)\n\n%s\n\n", profile.Name, profile.AuthorID, profile.Description)
	printStyleGuide(os.Stdout, guide)
	return nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	runs, err := a.openRunLog()
	if err != nil {
		return err
	}
	defer func() { _ = runs.Close() }()

	list, err := runs.List(cmd.Context(), runsAuthor, runsLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tKIND\tAUTHOR\tSTATUS\tEXAMPLES\tDURATION\tERROR")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Kind, r.AuthorID, r.Status, r.Examples, runDuration(r), r.Error)
	}
	return tw.Flush()
}

func runDuration(r *storage.Run) string {
	if r.FinishedAt.IsZero() {
		return "-"
	}
	return r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
}
