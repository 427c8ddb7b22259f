package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for configuration",
	Long: `Emit a JSON schema describing every chirpd configuration field.

Point your editor's YAML language server at the generated schema to get
completion and inline validation while editing config.yaml.

Examples:
  # Print to stdout
  chirpd config schema

  # Write next to the config for editor tooling
  chirpd config schema --output config.schema.json`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	schemaJSON, err := buildSchema()
	if err != nil {
		return err
	}

	if schemaOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
		return nil
	}

	if err := os.WriteFile(schemaOutput, schemaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
	return nil
}

// buildSchema reflects the configuration struct into a self-contained JSON
// schema document.
func buildSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "Chirpd Configuration"
	schema.Description = "Configuration schema for the chirpd server"

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	return out, nil
}
