package cmd

import (
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/fsutil"
	"github.com/devantler-tech/jenkins-manager/pkg/io/schema"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/spf13/cobra"
)

const schemaFilePerm = 0o644

// NewSchemaCmd creates the schema command, printing the config file JSON schema.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [output]",
		Short: "Print the JSON schema of jenkins-manager.yaml",
		Long: `Print the JSON schema of jenkins-manager.yaml to stdout, or write it to output.

Reference it from the config file for editor completion:

  # yaml-language-server: $schema=./jenkins-manager.schema.json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runSchema,
	}
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := schema.Generate()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(data)
		if err != nil {
			return fmt.Errorf("write schema: %w", err)
		}

		return nil
	}

	err = fsutil.WriteFileAtomic(args[0], data, schemaFilePerm)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	notify.Successf(cmd.OutOrStdout(), "schema written to %s", args[0])

	return nil
}
