package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/demengc/bwell-logkit/internal"
	"github.com/demengc/bwell-logkit/internal/export"
	"github.com/spf13/cobra"
)

var (
	format          string
	outputPath      string
	exportTable     string
	flatten         bool
	includeMetadata bool
	exportSel       selection
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a log file or one scene to another format",
	Long: `Export the records of a log file to json, jsonl, yaml, md, csv or sqlite.

Without --out the file is written to the configured output directory as
<name>[_<scene>_<instance>].<ext>. Use --out - to write to stdout (not
available for sqlite).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := loadSession(args[0])
		if err != nil {
			return err
		}
		src, err := exportSel.apply(cmd, session)
		if err != nil {
			return err
		}

		opts := []export.Option{
			export.WithFlatten(flatten),
			export.WithMetadata(includeMetadata),
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if strings.EqualFold(format, "sqlite") {
			return exportSQLite(ctx, cmd, args[0], src, opts)
		}

		exporter, err := export.NewExporter(strings.ToLower(format), opts...)
		if err != nil {
			return err
		}

		if outputPath == "-" {
			return exporter.Export(src, cmd.OutOrStdout())
		}

		path, err := resolveOutputPath(args[0], exporter.Extension())
		if err != nil {
			return err
		}
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d record(s) to %s", src.Len(), path), func() error {
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", path, err)
			}
			defer file.Close()
			return exporter.Export(src, file)
		})
		if err != nil {
			return err
		}

		printer(cmd).Success("Exported %d record(s) to %s", src.Len(), path)
		return nil
	},
}

func exportSQLite(ctx context.Context, cmd *cobra.Command, input string, src recordSet, opts []export.Option) error {
	if outputPath == "-" {
		return fmt.Errorf("sqlite export cannot be written to stdout")
	}
	exporter := export.NewSQLiteExporter(opts...)
	path, err := resolveOutputPath(input, exporter.Extension())
	if err != nil {
		return err
	}

	table := exportTable
	if table == "" {
		table = export.DefaultTable
	}

	steps := []internal.ProgressStep{
		{
			Message: fmt.Sprintf("Writing %d record(s) to %s", src.Len(), path),
			Fn: func() error {
				return exporter.Export(ctx, path, table, src)
			},
		},
		{
			Message: "Verifying row count",
			Fn: func() error {
				db, err := internal.OpenDatabaseReadOnly(path)
				if err != nil {
					return err
				}
				defer db.Close()
				n, err := internal.CountRows(ctx, db, table)
				if err != nil {
					return err
				}
				if n != src.Len() {
					return fmt.Errorf("table %s has %d rows, expected %d", table, n, src.Len())
				}
				return nil
			},
		},
	}
	if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
		return err
	}

	printer(cmd).Success("Exported %d record(s) to %s (table %s)", src.Len(), path, table)
	return nil
}

// resolveOutputPath picks the destination for input: --out as given, a
// default name inside --out when it is a directory, or a default name in
// the configured output directory. Parent directories are created.
func resolveOutputPath(input, ext string) (string, error) {
	name := defaultOutputName(input, ext)

	path := filepath.Join(cfg.OutDir, name)
	if outputPath != "" {
		path = outputPath
		if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
			path = filepath.Join(outputPath, name)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return path, nil
}

func defaultOutputName(input, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if exportSel.scene != "" {
		base = fmt.Sprintf("%s_%s_%d", base, sanitizeName(exportSel.scene), exportSel.instance)
	}
	return base + "." + ext
}

func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", cfg.ExportFormat, "Export format (json, jsonl, yaml, md, csv, sqlite)")
	exportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file or directory, - for stdout")
	exportCmd.Flags().StringVar(&exportTable, "table", export.DefaultTable, "Table name for sqlite exports")
	exportCmd.Flags().BoolVar(&flatten, "flatten", true, "Flatten nested objects into parent_child columns (csv, md, sqlite)")
	exportCmd.Flags().BoolVar(&includeMetadata, "include-metadata", false, "Add session_<key> metadata columns (csv, md, sqlite)")
	exportSel.addFlags(exportCmd)
}
