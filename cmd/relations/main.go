// Command relations runs relationship extraction over exported project files.
package main

import (
	"os"

	"github.com/OFFIS-RIT/storyboard/backend/internal/util"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger/console"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relations",
	Short: "Infer character relationships from storyboard scenes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug: debug || util.GetEnvBool("DEBUG", false),
		}))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(analyzeCmd, keywordsCmd)
}

func main() {
	util.LoadEnv()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
