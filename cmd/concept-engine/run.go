// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate keywords, then several concept batches",
	Long: `Run performs the full flow: generate run.keywords keywords, then run.batches
times sample run.seeds stored keywords and generate run.concepts concepts from
them. The first failing step stops the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		rc := a.cfg.Run
		logger.Info("run started", "keywords", rc.Keywords, "batches", rc.Batches, "seeds", rc.Seeds, "concepts", rc.Concepts)

		if err := a.creator.CreateKeywords(ctx, rc.Keywords); err != nil {
			return err
		}
		for i := range rc.Batches {
			seeds, err := a.creator.GetKeywords(ctx, rc.Seeds)
			if err != nil {
				return err
			}
			if err := a.creator.CreateConcept(ctx, rc.Concepts, seeds); err != nil {
				return err
			}
			logger.Info("batch finished", "batch", i+1, "of", rc.Batches)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Int("keywords", 0, "keywords to generate (overrides run.keywords)")
	runCmd.Flags().Int("batches", 0, "concept batches (overrides run.batches)")
	runCmd.Flags().Int("seeds", 0, "seed keywords per batch (overrides run.seeds)")
	runCmd.Flags().Int("concepts", 0, "concepts per batch (overrides run.concepts)")

	for _, name := range []string{"keywords", "batches", "seeds", "concepts"} {
		viper.BindPFlag("run."+name, runCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(runCmd)
}
