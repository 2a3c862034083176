package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

// createAdminCmd cria um administrador; usuário existente é promovido
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Cria ou promove um administrador",
	Long: `Cria um usuário com papel ADMIN. Se o username já existir, o usuário
é promovido e recebe a senha informada.

Exemplo:
  adboard create-admin --username admin@example.com --password s3cret-pass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 8 {
			return errors.New("password must have at least 8 characters")
		}

		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			if err := a.migrate(); err != nil {
				return err
			}

			user, err := a.userService(a.fileStore()).CreateAdmin(ctx, adminUsername, adminPassword)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %d)\n", user.Username, user.ID)
			return nil
		})
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Username (email) do administrador")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Senha do administrador")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
