package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/orgchart/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize orgchart configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to point orgchart at your directory export and generates a .orgchart.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
