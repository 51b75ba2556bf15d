package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "disha",
	Short: "Career guidance for students",
	Long:  "Disha helps students after school find their direction: timed aptitude quizzes, colleges, scholarships, exams and counsellor advice in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DISHA_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides DISHA_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a content catalog YAML file (overrides DISHA_CATALOG)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DISHA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
