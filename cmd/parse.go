package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Reconstruct a record and print its normalized field map",
	Long: `Parse a provenance record from a YAML or JSON file and re-emit it as the
normalized non-empty field map. Input lacking model_id is rejected; unknown
keys are dropped.

Examples:
  # Normalize a record received from a registry
  provctl parse --in received.json`,
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.String("in", "", "path to the record file (.yaml, .yml, or .json)")
	f.String("out", "", "output file (default stdout)")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	rec, err := loadRecord(in)
	if err != nil {
		return err
	}

	payload, err := emitShape(rec, "full", "")
	if err != nil {
		return err
	}

	zap.L().Debug("parsed provenance record", zap.String("model_id", rec.ModelID))

	return writeOutput(out, payload)
}
