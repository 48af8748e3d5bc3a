package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dsaquiz",
	Short: "Telegram bot that posts DSA quiz polls",
	Long: `dsaquiz periodically asks a language model for a multiple-choice question
about advanced data structures and algorithms and posts it to a Telegram
chat as a quiz poll.

Configuration comes from the environment, optionally seeded from a .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "dotenv files to load before reading the environment")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}

// envFiles returns the --env-file values.
func envFiles(cmd *cobra.Command) []string {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	return files
}
