package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	// Global flags
	envFile string
)

// rootCmd sem subcomando equivale a "serve"
var rootCmd = &cobra.Command{
	Use:   "adboard",
	Short: "Adboard - classificados com anúncios, imagens e comentários",
	Long: `Adboard serve a API HTTP de classificados.

Subcomandos:
  serve         - Inicia o servidor HTTP (padrão)
  migrate       - Cria ou atualiza as tabelas
  create-admin  - Cria ou promove um administrador`,
	Version:      version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Arquivo .env opcional")
}
