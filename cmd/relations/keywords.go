package main

import (
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the keyword tables used by the keyword extractor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"version":         relation.KeywordTablesVersion,
			"enemy_keywords":  relation.EnemyKeywords,
			"ally_keywords":   relation.AllyKeywords,
			"technical_terms": relation.TechnicalTerms,
			"stopwords":       relation.Stopwords,
			"reporting_verbs": relation.ReportingVerbs,
			"body_nouns":      relation.BodyNouns,
			"role_nouns":      relation.RoleNouns,
		})
	},
}
