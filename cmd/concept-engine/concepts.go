// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/concept-engine/internal/store"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Generate or list concepts",
}

var conceptsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate one batch of concepts and store them",
	Long: `Create asks the model for --count concepts seeded with keywords. Seeds are
either given with --keyword (repeatable) or sampled from the store with --seeds.
All concepts of the batch share one entry date and receive consecutive ids;
the seed keywords have their use count raised once the batch is stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		nSeeds, _ := cmd.Flags().GetInt("seeds")
		seeds, _ := cmd.Flags().GetStringSlice("keyword")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if len(seeds) == 0 {
			seeds, err = a.creator.GetKeywords(cmd.Context(), nSeeds)
			if err != nil {
				return err
			}
		}
		return a.creator.CreateConcept(cmd.Context(), count, seeds)
	},
}

var conceptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored concepts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		concepts, err := s.ListConcepts(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(concepts)
		}
		if len(concepts) == 0 {
			fmt.Fprintln(out, "no concepts stored")
			return nil
		}
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(concepts)
	},
}

var conceptsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all stored concepts to a YAML or JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Export(cmd.Context(), out, store.ExportFormat(format))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d concepts to %s\n", n, out)
		return nil
	},
}

func init() {
	conceptsCreateCmd.Flags().Int("count", 5, "number of concepts to generate")
	conceptsCreateCmd.Flags().Int("seeds", 10, "number of stored keywords to sample as seeds")
	conceptsCreateCmd.Flags().StringSlice("keyword", nil, "seed keyword (repeatable); skips sampling")
	conceptsCreateCmd.MarkFlagsMutuallyExclusive("seeds", "keyword")

	conceptsListCmd.Flags().Int("limit", 20, "maximum number of concepts to list")
	conceptsListCmd.Flags().Bool("json", false, "output as JSON")

	conceptsExportCmd.Flags().String("out", "concepts.yaml", "output file")
	conceptsExportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	conceptsCmd.AddCommand(conceptsCreateCmd, conceptsListCmd, conceptsExportCmd)
	rootCmd.AddCommand(conceptsCmd)
}
