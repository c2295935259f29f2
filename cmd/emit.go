package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nanda-net/model-provenance/pkg/provenance"
)

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Emit a provenance record in a consumer wire shape",
	Long: `Load a provenance record from a YAML or JSON file and print one of the
consumer wire shapes as indented JSON.

Shapes:
  facts   registry extension, nested under a namespacing key
  card    discovery profile metadata, nested under model_info
  audit   flat minimal fields for audit log entries
  full    the bare non-empty field map

Examples:
  # Registry extension under the default x_model_provenance key
  provctl emit facts --in record.yaml

  # Vendor-specific extension namespace
  provctl emit facts --in record.yaml --extension-key x_acme_models

  # Minimal audit fields written to a file
  provctl emit audit --in record.json --out audit.json`,
}

var emitFactsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Emit the registry extension shape",
	RunE:  runEmit,
}

var emitCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Emit the profile metadata shape",
	RunE:  runEmit,
}

var emitAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Emit the minimal audit shape",
	RunE:  runEmit,
}

var emitFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Emit the bare non-empty field map",
	RunE:  runEmit,
}

func init() {
	f := emitCmd.PersistentFlags()
	f.String("in", "", "path to the record file (.yaml, .yml, or .json)")
	f.String("out", "", "output file (default stdout)")
	f.String("extension-key", "", "registry extension namespace (facts shape only; default from config)")
	_ = emitCmd.MarkPersistentFlagRequired("in")

	emitCmd.AddCommand(emitFactsCmd, emitCardCmd, emitAuditCmd, emitFullCmd)
	rootCmd.AddCommand(emitCmd)
}

func runEmit(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	extKey, _ := cmd.Flags().GetString("extension-key")
	if extKey == "" && cfg != nil {
		extKey = cfg.Provenance.ExtensionKey
	}

	rec, err := loadRecord(in)
	if err != nil {
		return err
	}

	shape := cmd.Name()
	payload, err := emitShape(rec, shape, extKey)
	if err != nil {
		return err
	}

	zap.L().Debug("emitting provenance shape",
		zap.String("shape", shape),
		zap.String("model_id", rec.ModelID))

	return writeOutput(out, payload)
}

// emitShape serializes rec into the named wire shape.
func emitShape(rec provenance.Record, shape, extensionKey string) ([]byte, error) {
	var v any
	switch shape {
	case "facts":
		v = rec.RegistryExtension(extensionKey)
	case "card":
		v = rec.ProfileMetadata()
	case "audit":
		v = rec.MinimalAuditFields()
	case "full":
		v = rec.FullMap()
	default:
		return nil, eris.New("cmd: unknown shape " + shape)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "cmd: marshal shape")
	}
	return data, nil
}

// loadRecord reads a provenance record from a YAML or JSON file, chosen by
// extension. YAML files must decode to a flat string map.
func loadRecord(path string) (provenance.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return provenance.Record{}, eris.Wrap(err, "cmd: read record file")
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var fields map[string]string
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return provenance.Record{}, eris.Wrap(err, "cmd: unmarshal record yaml")
		}
		return provenance.FromMap(fields)
	}

	return provenance.ParseRecord(data)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrap(err, "cmd: write output file")
	}
	return nil
}
