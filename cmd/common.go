package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/demengc/bwell-logkit/internal"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// recordSet is what show and export operate on: a whole session or a
// scene view
type recordSet interface {
	Records() []*internal.Record
	Metadata() map[string]any
	Len() int
	Stats() internal.Stats
}

// readOptions applies the persistent --encoding and --cache-dir flags
func readOptions() []internal.ReadOption {
	opts := []internal.ReadOption{internal.WithEncoding(encoding)}
	if cacheDir != "" {
		opts = append(opts, internal.WithCache(internal.NewCacheManager(cacheDir)))
	}
	return opts
}

func printer(c *cobra.Command) *internal.Printer {
	return internal.NewPrinter(c.OutOrStdout(), c.ErrOrStderr())
}

func loadSession(path string) (*internal.Session, error) {
	session, err := internal.LoadLog(path, readOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	internal.LogDebug("Loaded %s", session)
	return session, nil
}

// selection holds the scene, type and time flags shared by show and export
type selection struct {
	scene    string
	instance int
	types    []string
	from     float64
	to       float64
}

func (s *selection) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.scene, "scene", "", "Restrict to one scene by name")
	cmd.Flags().IntVar(&s.instance, "instance", 0, "Scene instance, 0-based (requires --scene)")
	cmd.Flags().StringSliceVar(&s.types, "type", nil, "Keep only records of this type (repeatable)")
	cmd.Flags().Float64Var(&s.from, "from", 0, "Keep records at or after this game time (seconds)")
	cmd.Flags().Float64Var(&s.to, "to", 0, "Keep records at or before this game time (seconds)")
}

// apply narrows session according to the flags that were set on cmd
func (s *selection) apply(cmd *cobra.Command, session *internal.Session) (recordSet, error) {
	flags := cmd.Flags()
	if flags.Changed("instance") && s.scene == "" {
		return nil, fmt.Errorf("--instance requires --scene")
	}

	var preds []internal.Predicate
	if len(s.types) > 0 {
		preds = append(preds, internal.TypeIn(s.types...))
	}
	if flags.Changed("from") || flags.Changed("to") {
		from, to := math.Inf(-1), math.Inf(1)
		if flags.Changed("from") {
			from = s.from
		}
		if flags.Changed("to") {
			to = s.to
		}
		if from > to {
			return nil, fmt.Errorf("--from (%g) is after --to (%g)", from, to)
		}
		preds = append(preds, internal.TimeBetween(from, to))
	}
	pred := allOf(preds)

	if s.scene != "" {
		view, err := session.Scene(s.scene, s.instance)
		if err != nil {
			return nil, err
		}
		if pred != nil {
			view = view.Filter(pred)
		}
		return view, nil
	}
	if pred != nil {
		return session.Filter(pred), nil
	}
	return session, nil
}

func allOf(preds []internal.Predicate) internal.Predicate {
	if len(preds) == 0 {
		return nil
	}
	return func(r *internal.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func formatRange(r *internal.Range, format string) string {
	if r == nil {
		return dimStyle.Render("—")
	}
	return fmt.Sprintf(format+" to "+format, r.Start, r.End)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}
