package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/spf13/cobra"
)

var (
	batchPattern    string
	batchWorkers    int
	batchSkipErrors bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Load every log file under a directory",
	Long: `Recursively load every log file under a directory in parallel and print
a table of files, record counts and scenes.

Files that fail to load are listed and skipped unless --skip-errors=false,
in which case the first failure stops the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var result *internal.BatchResult
		err := internal.ShowCountedProgress(ctx, fmt.Sprintf("Loading %s files under %s", batchPattern, dir), func(c *internal.Counter) error {
			var err error
			result, err = internal.LoadAllLogs(ctx, dir,
				internal.WithPattern(batchPattern),
				internal.WithWorkers(batchWorkers),
				internal.WithSkipErrors(batchSkipErrors),
				internal.WithReadOptions(readOptions()...),
				internal.WithCounter(c),
			)
			return err
		})
		if err != nil {
			return err
		}

		printBatch(cmd.OutOrStdout(), result)
		if n := len(result.Failed); n > 0 {
			printer(cmd).Warning("Skipped %d file(s) that failed to load", n)
		}
		return nil
	},
}

func printBatch(out io.Writer, result *internal.BatchResult) {
	paths := result.Paths()
	if len(paths) == 0 && len(result.Failed) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No log files found"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Loaded %d log file(s)", len(paths))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "File\tRecords\tGame time (s)\tScenes\t")
	for _, p := range paths {
		session := result.Sessions[p]
		st := session.Stats()
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n",
			truncate(p, 60), st.TotalRecords, formatRange(st.GameTimeRange, "%.1f"), joinOrDash(session.ListScenes()))
	}
	_ = w.Flush()

	if len(result.Failed) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Failed (%d)", len(result.Failed))))
		for _, f := range result.Failed {
			_, _ = fmt.Fprintf(out, "  %s\n", f.Error())
		}
	}
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchPattern, "pattern", cfg.Pattern, "Glob matched against file names")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", cfg.Workers, "Number of files loaded in parallel")
	batchCmd.Flags().BoolVar(&batchSkipErrors, "skip-errors", cfg.SkipErrors, "Skip files that fail to load instead of stopping")
}
