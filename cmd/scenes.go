package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/spf13/cobra"
)

var (
	scenesSort string
	scenesJSON bool
)

// scenesCmd represents the scenes command
var scenesCmd = &cobra.Command{
	Use:   "scenes <file>",
	Short: "List scene instances in a log file",
	Long: `List every scene instance found in a log file with its start, end and
duration, followed by per-scene totals.

Instances are grouped by scene in discovery order unless --sort is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, err := internal.ParseSortKey(scenesSort)
		if err != nil {
			return err
		}

		session, err := loadSession(args[0])
		if err != nil {
			return err
		}

		scenes := session.Scenes()
		if scenesJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scenes.Summary())
		}

		instances, err := scenes.SceneInstances("", sortBy)
		if err != nil {
			return err
		}
		printScenes(cmd.OutOrStdout(), instances, scenes.Summary())
		return nil
	},
}

func printScenes(out io.Writer, instances []internal.SceneInfo, summary []internal.SceneSummary) {
	if len(instances) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("🎬 No scenes found"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🎬 Found %d scene instance(s)", len(instances))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "Scene\tInstance\tStart (s)\tEnd (s)\tDuration (s)\tStart epoch ms\t")
	for _, inst := range instances {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\t%d\t\n",
			inst.Name, inst.Instance, inst.StartGameTime, inst.EndGameTime, inst.Duration(), inst.StartEpoch)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, titleStyle.Render("Totals"))
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "Scene\tInstances\tTotal (s)\tAverage (s)\t")
	for _, s := range summary {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t\n", s.Name, s.InstanceCount, s.TotalDurationSecs, s.AverageDurationSecs)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	scenesCmd.Flags().StringVar(&scenesSort, "sort", "none", "Order instances by none, game_time or epoch")
	scenesCmd.Flags().BoolVar(&scenesJSON, "json", false, "Print the per-scene summary as JSON")
}
