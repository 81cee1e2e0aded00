package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llmterm/llmterm/internal/agentcfg"
	"github.com/llmterm/llmterm/internal/fileio"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List configured agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAgents()
	},
}

func runAgents() error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	agentsDir := filepath.Join(env.layout.Root(), "agents")
	entries, err := os.ReadDir(agentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No agents configured.")
			return nil
		}
		return err
	}

	found := false
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		found = true
		name := e.Name()

		var ac agentcfg.AgentConfig
		cfgErr := fileio.DecodeYAML(filepath.Join(agentsDir, name, agentcfg.ConfigFileName), &ac)
		switch {
		case cfgErr != nil:
			fmt.Printf("%s\t(unusable: %v)\n", name, cfgErr)
		case len(ac.Tools) > 0:
			fmt.Printf("%s\ttools: %s\n", name, strings.Join(ac.Tools, ", "))
		default:
			fmt.Printf("%s\ttools: none\n", name)
		}
	}
	if !found {
		fmt.Println("No agents configured.")
	}
	return nil
}
