// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grant-parser/internal/store"
	"github.com/pdiddy/grant-parser/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the grant archive",
	Long: `Search runs full-text and structured queries against the SQLite
archive built by parse --archive. Full-text queries match titles,
abstracts, and claim text; filters narrow by kind code or inventor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOptions{}
		opts.Query, _ = cmd.Flags().GetString("query")
		opts.Kind, _ = cmd.Flags().GetString("kind")
		opts.Inventor, _ = cmd.Flags().GetString("inventor")
		opts.MaxResults, _ = cmd.Flags().GetInt("max-results")
		asJSON, _ := cmd.Flags().GetBool("json")

		if opts.IsEmpty() {
			return fmt.Errorf("nothing to search for: pass --query, --kind, or --inventor")
		}

		cfg := types.StoreConfig{
			DBPath:     stringSetting(cmd, "db", "store.db_path", "grants.db"),
			MaxResults: viper.GetInt("store.max_results"),
		}
		s, err := store.Open(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.Retrieve(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		for _, rec := range results {
			printResult(rec)
		}
		fmt.Printf("%d result(s)\n", len(results))
		return nil
	},
}

func printResult(rec types.GrantRecord) {
	id, title, kind := "(none)", "(untitled)", "--"
	if rec.GrantID != nil {
		id = *rec.GrantID
	}
	if rec.Title != nil {
		title = *rec.Title
	}
	if rec.Kind != nil {
		kind = *rec.Kind
	}
	fmt.Printf("%s  [%s]  %s\n", id, kind, title)
	fmt.Printf("    claims: %d, citations: %d, inventors: %d\n",
		rec.NumClaims, rec.NumCitations, len(rec.Inventors))
}

func init() {
	searchCmd.Flags().String("db", "grants.db", "SQLite archive path")
	searchCmd.Flags().String("query", "", "full-text search query")
	searchCmd.Flags().String("kind", "", "filter by USPTO kind code (e.g. B2)")
	searchCmd.Flags().String("inventor", "", "filter by inventor name (\"First Last\")")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
