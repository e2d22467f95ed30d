package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cinematch",
	Short: "Movie genre quiz",
	Long: "Cinematch asks five quick questions, names the movie genre that fits your mood " +
		"and suggests films for it from TMDB.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides CINEMATCH_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CINEMATCH_DB and store.path)")
	rootCmd.PersistentFlags().String("quiz", "", "Path to a quiz table YAML file (overrides quiz.path)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
