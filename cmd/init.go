package cmd

import (
	"github.com/spf13/cobra"

	"github.com/iconicfonts/iconic/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize iconic configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the catalog sources and generates a .iconic.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
