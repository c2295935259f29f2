package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nanda-net/model-provenance/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "provctl",
	Short: "Reshape model provenance records for agent discovery consumers",
	Long:  "Reads a model provenance record from YAML or JSON and emits the wire shape expected by registries (namespaced extension), discovery profiles (model_info metadata), or audit log writers (minimal flat fields).",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
