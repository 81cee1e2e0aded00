package main

import (
	"github.com/spf13/cobra"

	"github.com/llmterm/llmterm/internal/config"
	"github.com/llmterm/llmterm/internal/paths"
	"github.com/llmterm/llmterm/internal/telemetry"
)

var settingsPath string

var rootCmd = &cobra.Command{
	Use:           "llmterm",
	Short:         "Local LLM terminal environment",
	Long:          "llmterm runs locally configured LLM agents: shared context, per-agent prompts and sandboxed file tools.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "settings.yaml", "base settings file (missing is fine; env still applies)")
	rootCmd.AddCommand(chatCmd, askCmd, agentsCmd, contextCmd)
}

// appEnv bundles the process-wide pieces every command needs.
type appEnv struct {
	cfg    *config.Config
	layout paths.Layout
	events *telemetry.Emitter
}

func loadEnv() (*appEnv, error) {
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	layout := paths.NewLayout(cfg.GetString("workspace.root"))
	events := telemetry.NewEmitter(layout.EventsFile(), cfg.GetBool("telemetry.enabled"))
	return &appEnv{cfg: cfg, layout: layout, events: events}, nil
}
