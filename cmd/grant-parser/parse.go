// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grant-parser/internal/export"
	"github.com/pdiddy/grant-parser/internal/pipeline"
	"github.com/pdiddy/grant-parser/internal/store"
	"github.com/pdiddy/grant-parser/pkg/types"
)

// exportBase is the stem of every exported file name.
const exportBase = "patent_grants"

var parseCmd = &cobra.Command{
	Use:   "parse [input-file]",
	Short: "Parse a patent-grant text dump into structured exports",
	Long: `Parse splits the input file into individual patent-grant documents,
extracts the grant schema from each, and writes the records to the
selected export formats. Documents with missing fields still produce
records; only a truncated trailing document is dropped, and the skip
is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := stringSetting(cmd, "output-dir", "export.output_dir", "output")
		formats, _ := cmd.Flags().GetStringSlice("format")
		strip := boolSetting(cmd, "strip-markup", "export.strip_markup")
		archive, _ := cmd.Flags().GetBool("archive")

		parserCfg := types.ParserConfig{
			EntitiesFile: stringSetting(cmd, "entities", "parser.entities_file", ""),
			BufferSize:   viper.GetInt("parser.buffer_size"),
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		var (
			sinks   []pipeline.Sink
			closers []func() error
			files   []*os.File
		)
		defer func() {
			for _, f := range files {
				f.Close()
			}
		}()

		for _, format := range formats {
			path := filepath.Join(outDir, exportBase+"."+format)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			files = append(files, f)

			sink, closeFn, err := newSink(format, f, strip)
			if err != nil {
				return err
			}
			sinks = append(sinks, sink)
			closers = append(closers, closeFn)
		}

		var st *store.Store
		if archive {
			cfg := types.StoreConfig{
				DBPath:     stringSetting(cmd, "db", "store.db_path", "grants.db"),
				MaxResults: viper.GetInt("store.max_results"),
			}
			s, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer s.Close()
			st = s
			sinks = append(sinks, pipeline.SinkFunc(func(rec types.GrantRecord) error {
				return s.Insert(cmd.Context(), rec)
			}))
		}

		summary, err := pipeline.RunFile(cmd.Context(), args[0], parserCfg, os.Stderr, sinks...)
		if err != nil {
			return err
		}

		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				return err
			}
		}

		if st != nil {
			n, err := st.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "archive now holds %d record(s)\n", n)
		}

		fmt.Fprintf(os.Stderr, "wrote %d record(s) as %s to %s\n",
			summary.Documents, strings.Join(formats, ", "), outDir)
		return nil
	},
}

// newSink builds the export sink for one format name.
func newSink(format string, w io.Writer, strip bool) (pipeline.Sink, func() error, error) {
	switch format {
	case "csv":
		s, err := export.NewCSVSink(w, strip)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "json":
		s, err := export.NewJSONSink(w, strip)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "yaml":
		s := export.NewYAMLSink(w)
		return s, s.Close, nil
	case "xlsx":
		s, err := export.NewXLSXSink(w, strip)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown export format %q (want csv, json, yaml, or xlsx)", format)
	}
}

// stringSetting resolves a string option: explicit flag, then config
// file, then the flag's default (or def when the default is empty).
func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return def
}

// boolSetting resolves a bool option with the same precedence.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func init() {
	parseCmd.Flags().String("output-dir", "output", "directory for exported files")
	parseCmd.Flags().StringSlice("format", []string{"csv", "json"}, "export formats: csv, json, yaml, xlsx")
	parseCmd.Flags().Bool("strip-markup", true, "remove residual tags from claim and abstract text in exports")
	parseCmd.Flags().String("entities", "", "YAML file of extra entity replacements")
	parseCmd.Flags().Bool("archive", false, "also insert records into the SQLite archive")
	parseCmd.Flags().String("db", "grants.db", "SQLite archive path (with --archive)")

	rootCmd.AddCommand(parseCmd)
}
