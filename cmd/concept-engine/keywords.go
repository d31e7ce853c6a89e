// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Generate or sample seed keywords",
}

var keywordsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate keywords and store them",
	Long: `Create asks the model for --count one-word keywords. Each keyword is stored
once per model; a keyword generated again has its create count raised. If any
keyword is longer than 100 characters the whole batch is discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		return a.creator.CreateKeywords(cmd.Context(), count)
	},
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Sample stored keywords, favouring less-used ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		keywords, err := s.FetchKeywords(cmd.Context(), count)
		if err != nil {
			return err
		}
		for _, k := range keywords {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	keywordsCreateCmd.Flags().Int("count", 100, "number of keywords to generate")
	keywordsListCmd.Flags().Int("count", 10, "number of keywords to sample")

	keywordsCmd.AddCommand(keywordsCreateCmd, keywordsListCmd)
	rootCmd.AddCommand(keywordsCmd)
}
