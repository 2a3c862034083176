package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria ou atualiza as tabelas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(_ context.Context, a *app) error {
			return a.migrate()
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
