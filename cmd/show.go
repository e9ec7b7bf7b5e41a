package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/spf13/cobra"
)

var (
	showSel   selection
	showLimit int
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "List records of a log file",
	Long: `List the records of a log file in game-time order.

Narrow the output with --scene/--instance, --type (repeatable) and
--from/--to. Times are absolute game-time seconds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		session, err := loadSession(args[0])
		if err != nil {
			return err
		}
		src, err := showSel.apply(cmd, session)
		if err != nil {
			return err
		}

		printRecords(cmd.OutOrStdout(), src, showLimit)
		return nil
	},
}

func printRecords(out io.Writer, src recordSet, limit int) {
	total := src.Len()
	header := fmt.Sprintf("📄 %d record(s)", total)
	if st := src.Stats(); st.Scene != nil {
		header = fmt.Sprintf("📄 %s #%d: %d record(s)", st.Scene.Name, st.Scene.Instance, total)
	}
	_, _ = fmt.Fprintln(out, headerStyle.Render(header))
	if total == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Time (s)\tEpoch ms\tType\tFields\t")
	shown := 0
	for _, r := range src.Records() {
		if limit > 0 && shown >= limit {
			break
		}
		_, _ = fmt.Fprintf(w, "%.3f\t%d\t%s\t%s\t\n", r.GameTime(), r.Epoch(), recordType(r), truncate(detailFields(r), 120))
		shown++
	}
	_ = w.Flush()

	if shown < total {
		_, _ = fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("… %d more record(s)", total-shown)))
	}
}

func recordType(r *internal.Record) string {
	if r.HasType() {
		return r.Type()
	}
	return internal.UnknownRecordType
}

// detailFields renders every field except time and type as compact JSON
func detailFields(r *internal.Record) string {
	rest := internal.NewRecord()
	r.Each(func(key string, value any) bool {
		switch key {
		case internal.FieldGameTimeSecs, internal.FieldMillisSinceEpoch, internal.FieldRecordType:
		default:
			rest.Set(key, value)
		}
		return true
	})
	return rest.String()
}

func init() {
	rootCmd.AddCommand(showCmd)
	showSel.addFlags(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show at most this many records (0 = all)")
}
