package commands

import (
	"execbench/internal/config"
	"execbench/internal/manifest"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ManifestCommand handles the manifest command
type ManifestCommand struct {
	config *config.Config
}

// NewManifestCommand creates a new ManifestCommand
func NewManifestCommand(cfg *config.Config) *ManifestCommand {
	return &ManifestCommand{config: cfg}
}

// Execute runs the command
func (mc *ManifestCommand) Execute(cmd *cobra.Command, args []string) error {
	generator := &manifest.Generator{
		TemplatePath: mc.config.GetTemplatePath(),
		RuntimesDir:  mc.config.GetRuntimesDir(),
		OutputPath:   mc.config.GetManifestPath(),
	}
	if err := generator.Generate(); err != nil {
		return err
	}

	color.Green("✓ Wrote %s", mc.config.GetManifestPath())
	return nil
}
