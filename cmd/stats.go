package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/spf13/cobra"
)

var statsJSON bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show summary statistics for a log file",
	Long: `Show record counts per type, game-time and epoch ranges and the scenes
found in a log file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := loadSession(args[0])
		if err != nil {
			return err
		}

		st := session.Stats()
		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printStats(cmd.OutOrStdout(), args[0], st)
		return nil
	},
}

func printStats(out io.Writer, path string, st internal.Stats) {
	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📊 %s", path)))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Records\t%s\n", countStyle.Render(fmt.Sprint(st.TotalRecords)))
	_, _ = fmt.Fprintf(w, "Game time\t%s\n", formatRange(st.GameTimeRange, "%.3f"))
	_, _ = fmt.Fprintf(w, "Epoch ms\t%s\n", formatRange(st.EpochRange, "%.0f"))
	_ = w.Flush()

	if len(st.RecordTypes) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, titleStyle.Render("Record types"))
		types := make([]string, 0, len(st.RecordTypes))
		for t := range st.RecordTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, t := range types {
			_, _ = fmt.Fprintf(w, "  %s\t%d\n", t, st.RecordTypes[t])
		}
		_ = w.Flush()
	}

	if len(st.Scenes) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, titleStyle.Render("Scenes"))
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, sc := range st.Scenes {
			_, _ = fmt.Fprintf(w, "  %s\t%d instance(s)\n", sc.Name, sc.Instances)
		}
		_ = w.Flush()
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
}
